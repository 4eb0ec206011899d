package handlers

import (
	"errors"
	"log"
	"net/http"

	"food-order-api/services"

	"github.com/gin-gonic/gin"
)

// ok writes the uniform success envelope, merging extra payload fields.
func ok(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// fail converts any service failure into the {ok:false, error} envelope.
// Unexpected errors are logged and reported generically.
func fail(c *gin.Context, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		c.JSON(se.Code, gin.H{"ok": false, "error": se.Msg})
		return
	}
	log.Println("internal error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "something went wrong"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
}
