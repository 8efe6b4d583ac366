package v1

import (
	"net/http"

	"github.com/finvoice/finvoice/internal/api/dto"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/service"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateInvoice handles the create form submission. A successful mutation
// answers with a redirect to the invoice listing; a validation failure
// returns the full field error map for the form to re-render.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var input dto.InvoiceFormInput
	if err := c.ShouldBind(&input); err != nil {
		h.logger.Errorw("failed to bind invoice form", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	outcome := h.invoiceService.CreateFromForm(c.Request.Context(), &input)
	h.respondToOutcome(c, outcome)
}

// UpdateInvoice handles the edit form submission. The invoice id comes
// from the route, never from the form body.
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid invoice id").WithHint("Invoice ID is required").Mark(ierr.ErrValidation))
		return
	}

	var input dto.InvoiceFormInput
	if err := c.ShouldBind(&input); err != nil {
		h.logger.Errorw("failed to bind invoice form", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	outcome := h.invoiceService.UpdateFromForm(c.Request.Context(), id, &input)
	h.respondToOutcome(c, outcome)
}

// DeleteInvoice removes an invoice. Deletion happens from within the
// listing view, so success carries no redirect; the listing re-renders
// against the invalidated cache.
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid invoice id").WithHint("Invoice ID is required").Mark(ierr.ErrValidation))
		return
	}

	outcome := h.invoiceService.Delete(c.Request.Context(), id)
	if outcome.Status == dto.MutationExecutionFailed {
		c.JSON(http.StatusInternalServerError, gin.H{"message": outcome.Message})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invalid invoice id").WithHint("Invoice ID is required").Mark(ierr.ErrValidation))
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var filter types.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.Errorw("failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid query parameters").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondToOutcome maps a mutation outcome onto the HTTP response. The
// redirect is an expected control transfer, not an error, so it is acted
// on here directly and never routed through the error handler.
func (h *InvoiceHandler) respondToOutcome(c *gin.Context, outcome dto.MutationOutcome) {
	switch outcome.Status {
	case dto.MutationSucceeded:
		c.Redirect(http.StatusSeeOther, outcome.RedirectTo)
	case dto.MutationValidationFailed:
		c.JSON(http.StatusBadRequest, outcome)
	case dto.MutationExecutionFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"message": outcome.Message})
	}
}
