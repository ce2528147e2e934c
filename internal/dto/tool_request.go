package dto

// Hours and Limit are pointers so an omitted field takes the default while an
// explicit zero is rejected.

type ErrorSummaryRequest struct {
	Namespace string   `json:"namespace" form:"namespace"`
	Hours     *float64 `json:"hours" form:"hours"`
}

type PodRestartsRequest struct {
	Namespace string   `json:"namespace" form:"namespace"`
	Hours     *float64 `json:"hours" form:"hours"`
}

type LogSearchRequest struct {
	Query     string   `json:"query" form:"query"`
	Namespace string   `json:"namespace" form:"namespace"`
	Hours     *float64 `json:"hours" form:"hours"`
	Limit     *int     `json:"limit" form:"limit"`
}

type NamespaceListRequest struct {
	Hours *float64 `json:"hours" form:"hours"`
}

type PodListRequest struct {
	Namespace string   `json:"namespace" form:"namespace"`
	Hours     *float64 `json:"hours" form:"hours"`
}

type PodLogsRequest struct {
	PodName   string   `json:"pod_name" form:"pod_name"`
	Namespace string   `json:"namespace" form:"namespace"`
	Contains  string   `json:"contains" form:"contains"`
	Hours     *float64 `json:"hours" form:"hours"`
	Limit     *int     `json:"limit" form:"limit"`
}

// ToolCallRequest is the body of POST /api/v1/tools/{name}.
type ToolCallRequest struct {
	Arguments map[string]interface{} `json:"arguments"`
}
