package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Get the status of the current or last batch
	// (GET /status)
	GetStatus(c *gin.Context)
	// Cancel the running batch
	// (POST /cancel)
	CancelBatch(c *gin.Context)
	// List finished batches
	// (GET /batches)
	ListBatches(c *gin.Context, params ListBatchesParams)
	// Get a finished batch with its outputs
	// (GET /batches/{id})
	GetBatch(c *gin.Context, id string)
}

// ServerInterfaceWrapper converts gin contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler      ServerInterface
	ErrorHandler func(*gin.Context, error, int)
}

// GetStatus operation middleware
func (siw *ServerInterfaceWrapper) GetStatus(c *gin.Context) {
	siw.Handler.GetStatus(c)
}

// CancelBatch operation middleware
func (siw *ServerInterfaceWrapper) CancelBatch(c *gin.Context) {
	siw.Handler.CancelBatch(c)
}

// ListBatches operation middleware
func (siw *ServerInterfaceWrapper) ListBatches(c *gin.Context) {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListBatchesParams

	// ------------- Optional query parameter "state" -------------

	err = runtime.BindQueryParameter("form", true, false, "state", c.Request.URL.Query(), &params.State)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter state: %w", err), http.StatusBadRequest)
		return
	}

	// ------------- Optional query parameter "name" -------------

	err = runtime.BindQueryParameter("form", true, false, "name", c.Request.URL.Query(), &params.Name)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter name: %w", err), http.StatusBadRequest)
		return
	}

	// ------------- Optional query parameter "page" -------------

	err = runtime.BindQueryParameter("form", true, false, "page", c.Request.URL.Query(), &params.Page)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter page: %w", err), http.StatusBadRequest)
		return
	}

	// ------------- Optional query parameter "pageSize" -------------

	err = runtime.BindQueryParameter("form", true, false, "pageSize", c.Request.URL.Query(), &params.PageSize)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter pageSize: %w", err), http.StatusBadRequest)
		return
	}

	siw.Handler.ListBatches(c, params)
}

// GetBatch operation middleware
func (siw *ServerInterfaceWrapper) GetBatch(c *gin.Context) {
	var err error

	// ------------- Path parameter "id" -------------
	var id string

	err = runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter id: %w", err), http.StatusBadRequest)
		return
	}

	siw.Handler.GetBatch(c, id)
}

func defaultErrorHandler(c *gin.Context, err error, statusCode int) {
	c.JSON(statusCode, Error{Error: err.Error()})
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{
		Handler:      si,
		ErrorHandler: defaultErrorHandler,
	}

	router.GET("/status", wrapper.GetStatus)
	router.POST("/cancel", wrapper.CancelBatch)
	router.GET("/batches", wrapper.ListBatches)
	router.GET("/batches/:id", wrapper.GetBatch)
}
