package handlers

import (
	stderrors "errors"
	"net/http"

	"txn-query/internal/calculator"
	"txn-query/internal/dto"
	"txn-query/internal/errors"
	"txn-query/internal/validation"

	"github.com/labstack/echo/v4"
)

// CalculatorHandler evaluates arithmetic expressions
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// RegisterRoutes mounts the calculator endpoints on g
func (h *CalculatorHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/calculator/evaluate", h.Evaluate)
}

// Evaluate computes the result of an arithmetic expression
// @Summary Evaluate expression
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body dto.EvaluateExpressionRequest true "Expression over + - * / and decimal numbers"
// @Success 200 {object} dto.EvaluateExpressionResponse
// @Failure 422 {object} errors.ErrorResponse "CALC_001 - Invalid expression or CALC_002 - Division by zero"
// @Router /calculator/evaluate [post]
func (h *CalculatorHandler) Evaluate(c echo.Context) error {
	var req dto.EvaluateExpressionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		if fieldErrors := validation.FieldErrors(err); fieldErrors != nil {
			return SendValidationError(c, fieldErrors)
		}
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	result, err := calculator.Evaluate(req.Expression)
	switch {
	case stderrors.Is(err, calculator.ErrDivisionByZero):
		return SendError(c, errors.CalcDivisionByZero)
	case stderrors.Is(err, calculator.ErrInvalidExpression):
		return SendError(c, errors.CalcInvalidExpression, errors.WithDetails(err.Error()))
	case err != nil:
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.EvaluateExpressionResponse{
		Expression: req.Expression,
		Result:     result.String(),
	})
}
