package tracing

// Span attribute keys for registration API calls.
const (
	AttrHTTPMethod    = "http.request.method"
	AttrHTTPRoute     = "http.route"
	AttrHTTPStatus    = "http.response.status_code"
	AttrRequestID     = "signup.request_id"
	AttrEnvelopeCode  = "signup.envelope.code"
	AttrCoursePackage = "signup.course_package"
)

// SpanPrefixAPI prefixes every API client span, e.g. "api.register".
const SpanPrefixAPI = "api."
