package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alertQuery struct {
	State    string `form:"state" binding:"omitempty,oneof=active archived"`
	Node     string `form:"node" binding:"required"`
	MaxItems int    `form:"max_items" binding:"omitempty,min=1"`
}

func TestHandleValidationErrors(t *testing.T) {
	t.Run("Should list every failed field", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		rec := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(rec)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/api/alerts?state=pending", nil)

		var q alertQuery
		err := ctx.ShouldBindQuery(&q)
		require.Error(t, err)

		HandleValidationErrors(ctx, err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body ValidationErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Errors, 2)

		messages := map[string]string{}
		for _, e := range body.Errors {
			messages[e.Field] = e.Message
		}
		assert.Equal(t, "Must be one of: active, archived", messages["state"])
		assert.Equal(t, "This field is required", messages["node"])
	})
}

func TestToSnakeCase(t *testing.T) {
	t.Run("Should convert field names", func(t *testing.T) {
		assert.Equal(t, "max_items", toSnakeCase("MaxItems"))
		assert.Equal(t, "already_snake", toSnakeCase("already_snake"))
	})
}
