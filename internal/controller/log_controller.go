package controller

import (
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/dto"
	"loki-mcp/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	logQueryService service.LogQueryService
}

func NewLogController(logQueryService service.LogQueryService) *LogController {
	return &LogController{
		logQueryService: logQueryService,
	}
}

func RegisterLogRoutes(router *gin.Engine, controller *LogController) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/errors/summary", controller.GetErrorSummary)
		v1.GET("/restarts", controller.GetPodRestarts)
		v1.GET("/logs/search", controller.SearchLogs)
		v1.GET("/namespaces", controller.GetNamespaces)
		v1.GET("/pods", controller.GetPods)
		v1.GET("/pods/:pod/logs", controller.GetPodLogs)
	}
}

func bindQuery(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindQuery(req); err != nil {
		respondError(ctx, &apperror.Error{Kind: apperror.KindInvalidInput, Detail: "invalid query parameters", Err: err})
		return false
	}
	return true
}

// GetErrorSummary godoc
// @Summary      Summarize errors
// @Description  Groups error lines of the window by normalized signature and reports totals, level breakdown and affected pods.
// @Tags         logs
// @Produce      json
// @Param        namespace  query     string  false  "Namespace (empty = all namespaces)"
// @Param        hours      query     number  false  "Look-back window in hours (default: 1)"
// @Success      200        {object}  dto.ErrorSummaryResponse
// @Failure      400        {object}  model.Response "Invalid query parameters"
// @Failure      502        {object}  model.Response "Loki unreachable or returned an error"
// @Failure      504        {object}  model.Response "Loki request timed out"
// @Router       /api/v1/errors/summary [get]
func (c *LogController) GetErrorSummary(ctx *gin.Context) {
	var req dto.ErrorSummaryRequest
	if !bindQuery(ctx, &req) {
		return
	}
	result, err := c.logQueryService.ErrorSummary(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetPodRestarts godoc
// @Summary      Find pod restarts
// @Description  Lists restart and crash events (OOMKilled, CrashLoopBackOff, back-off, exits) per pod and reason.
// @Tags         logs
// @Produce      json
// @Param        namespace  query     string  false  "Namespace (empty = all namespaces)"
// @Param        hours      query     number  false  "Look-back window in hours (default: 1)"
// @Success      200        {object}  dto.PodRestartsResponse
// @Failure      400        {object}  model.Response "Invalid query parameters"
// @Failure      502        {object}  model.Response "Loki unreachable or returned an error"
// @Failure      504        {object}  model.Response "Loki request timed out"
// @Router       /api/v1/restarts [get]
func (c *LogController) GetPodRestarts(ctx *gin.Context) {
	var req dto.PodRestartsRequest
	if !bindQuery(ctx, &req) {
		return
	}
	result, err := c.logQueryService.PodRestarts(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// SearchLogs godoc
// @Summary      Search logs by regex
// @Tags         logs
// @Produce      json
// @Param        query      query     string  true   "RE2 pattern"
// @Param        namespace  query     string  false  "Namespace (empty = all namespaces)"
// @Param        hours      query     number  false  "Look-back window in hours (default: 1)"
// @Param        limit      query     int     false  "Maximum lines returned (default: 100)"
// @Success      200        {object}  dto.LogSearchResponse
// @Failure      400        {object}  model.Response "Invalid pattern or parameters"
// @Failure      502        {object}  model.Response "Loki unreachable or returned an error"
// @Failure      504        {object}  model.Response "Loki request timed out"
// @Router       /api/v1/logs/search [get]
func (c *LogController) SearchLogs(ctx *gin.Context) {
	var req dto.LogSearchRequest
	if !bindQuery(ctx, &req) {
		return
	}
	result, err := c.logQueryService.SearchLogs(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetNamespaces godoc
// @Summary      List namespaces with logs
// @Tags         inventory
// @Produce      json
// @Param        hours  query     number  false  "Look-back window in hours (default: 1)"
// @Success      200    {object}  dto.NamespaceListResponse
// @Failure      400    {object}  model.Response
// @Failure      502    {object}  model.Response
// @Router       /api/v1/namespaces [get]
func (c *LogController) GetNamespaces(ctx *gin.Context) {
	var req dto.NamespaceListRequest
	if !bindQuery(ctx, &req) {
		return
	}
	result, err := c.logQueryService.ListNamespaces(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetPods godoc
// @Summary      List pods with logs
// @Tags         inventory
// @Produce      json
// @Param        namespace  query     string  false  "Namespace (empty = all namespaces)"
// @Param        hours      query     number  false  "Look-back window in hours (default: 1)"
// @Success      200        {object}  dto.PodListResponse
// @Failure      400        {object}  model.Response
// @Failure      502        {object}  model.Response
// @Router       /api/v1/pods [get]
func (c *LogController) GetPods(ctx *gin.Context) {
	var req dto.PodListRequest
	if !bindQuery(ctx, &req) {
		return
	}
	result, err := c.logQueryService.ListPods(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetPodLogs godoc
// @Summary      Get recent pod logs
// @Description  Returns the most recent lines of pods matching the name pattern, oldest first. The pattern may contain * wildcards.
// @Tags         logs
// @Produce      json
// @Param        pod        path      string  true   "Pod name or wildcard pattern"
// @Param        namespace  query     string  false  "Namespace (empty = all namespaces)"
// @Param        contains   query     string  false  "Only lines containing this text"
// @Param        hours      query     number  false  "Look-back window in hours (default: 1)"
// @Param        limit      query     int     false  "Maximum lines returned (default: 100)"
// @Success      200        {object}  dto.PodLogsResponse
// @Failure      400        {object}  model.Response
// @Failure      502        {object}  model.Response
// @Failure      504        {object}  model.Response
// @Router       /api/v1/pods/{pod}/logs [get]
func (c *LogController) GetPodLogs(ctx *gin.Context) {
	var req dto.PodLogsRequest
	if !bindQuery(ctx, &req) {
		return
	}
	req.PodName = ctx.Param("pod")
	result, err := c.logQueryService.PodLogs(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
