package api

import (
	"github.com/gin-gonic/gin"
)

const (
	internalErrorMessage    = "Erro interno"
	methodNotAllowedMessage = "Method not allowed"
)

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// writeError sends the {ok:false, error} envelope and stops the chain.
func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{OK: false, Error: message})
}

// errorMessage returns err's text, or the generic message when there is none.
func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return internalErrorMessage
	}
	return err.Error()
}
