package delivery

import (
	"errors"
	"net/http"

	rulesdomain "email-audit-backend/internal/rules/domain"
	"email-audit-backend/internal/rules/usecase"

	"github.com/gin-gonic/gin"
)

// RuleHandler handles compliance rule HTTP requests
type RuleHandler struct {
	ruleUsecase usecase.RuleUsecase
}

// NewRuleHandler creates a new RuleHandler
func NewRuleHandler(ruleUsecase usecase.RuleUsecase) *RuleHandler {
	return &RuleHandler{
		ruleUsecase: ruleUsecase,
	}
}

// CreateRuleRequest represents the request body for creating a rule
type CreateRuleRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description" binding:"required"`
	Severity    rulesdomain.Severity    `json:"severity"`
	Definition  rulesdomain.JSONPayload `json:"definition"`
}

// SetActiveRequest represents the request body for toggling a rule
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// GetRules returns all rules
// GET /api/rules?active=true
func (h *RuleHandler) GetRules(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	rules, err := h.ruleUsecase.GetRules(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rules": rules,
		"total": len(rules),
	})
}

// GetRuleByID returns a specific rule
// GET /api/rules/:id
func (h *RuleHandler) GetRuleByID(c *gin.Context) {
	rule, err := h.ruleUsecase.GetRuleByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rule)
}

// CreateRule creates a new rule
// POST /api/rules
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.ruleUsecase.CreateRule(req.Name, req.Description, req.Severity, req.Definition)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// UpdateRule updates an existing rule
// PUT /api/rules/:id
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	var updates usecase.RuleUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.ruleUsecase.UpdateRule(c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, usecase.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rule)
}

// DeleteRule deletes a rule
// DELETE /api/rules/:id
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	if err := h.ruleUsecase.DeleteRule(c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rule deleted"})
}

// SetRuleActive toggles a rule's active flag
// PATCH /api/rules/:id/active
func (h *RuleHandler) SetRuleActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.ruleUsecase.SetRuleActive(c.Param("id"), *req.IsActive)
	if err != nil {
		if errors.Is(err, usecase.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rule)
}
