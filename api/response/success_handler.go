package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func requestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// HandleSuccess writes a 200 envelope with the given payload.
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		RequestID: requestID(c),
	})
}

// HandleCreated writes a 201 envelope with the created resource.
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success:   true,
		Data:      data,
		RequestID: requestID(c),
	})
}

// HandleNoContent writes 204 with no body.
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandlePaginated writes a 200 envelope around a paginated list.
func HandlePaginated(c *gin.Context, items interface{}, skip, limit, count int) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PaginatedResponse{
			Items: items,
			Pagination: Pagination{
				Skip:  skip,
				Limit: limit,
				Count: count,
			},
		},
		RequestID: requestID(c),
	})
}
