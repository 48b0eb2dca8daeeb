package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetReservationReceipt returns the reservation receipt PDF (inline).
func (h Handler) GetReservationReceipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := h.docsService(c).ReservationReceipt(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
