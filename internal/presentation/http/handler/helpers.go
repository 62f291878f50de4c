package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/soldoshop/upn-nalog/internal/application/service"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/dto/request"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/dto/response"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/middleware"
	"github.com/soldoshop/upn-nalog/pkg/apperror"
)

const maxOrderNumberLen = 100

// GetOperator extracts the authenticated operator name from the Gin context
func GetOperator(c *gin.Context) string {
	return c.GetString(middleware.OperatorKey)
}

// orderNumber returns the :number path parameter, or false when it is unusable.
func orderNumber(c *gin.Context) (string, bool) {
	number := c.Param("number")
	if number == "" || len(number) > maxOrderNumberLen {
		return "", false
	}
	return number, true
}

// bindSlipQuery binds and checks the slip query, writing the error response
// itself when the query is rejected.
func bindSlipQuery(c *gin.Context) (*request.SlipQuery, bool) {
	var q request.SlipQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, []apperror.FieldError{{Field: "query", Message: err.Error()}})
		return nil, false
	}
	if fields := q.TemplateErrors(); len(fields) > 0 {
		appErr := apperror.NewBadRequestError("Invalid payment slip template")
		appErr.Errors = fields
		response.Error(c, appErr)
		return nil, false
	}
	return &q, true
}

// renderContext maps the slip query to a service render context. Page is the
// default channel and customer the default audience.
func renderContext(q *request.SlipQuery) service.RenderContext {
	rc := service.RenderContext{
		Channel:   service.ChannelPage,
		ToAdmin:   q.Audience == "admin",
		Overrides: q.Overrides(),
	}
	if q.Context == service.ChannelEmail {
		rc.Channel = service.ChannelEmail
	}
	return rc
}
