// Package livesearch exposes the live-search orchestrator as tools.
//
// [NewSearchTools] returns search_web, search_news, search_social and
// search_general. [NewHealthTool] returns health_check and
// [NewClearCacheTool] returns clear_cache. Failed searches are reported as an
// [*EnvelopeError] whose [Envelope] echoes the request and carries a fresh
// request ID, ready to be returned to the caller as-is.
package livesearch
