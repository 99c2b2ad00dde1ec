package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"translatord/pkg/types"
)

// zlog is the structured logger for the HTTP layer. Defaults to a disabled
// logger until SetLogger installs the process logger.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l }

func logStart(r *http.Request, req types.TranslateRequest) {
	z := zlog.Info().Str("path", r.URL.Path).
		Str("source_lang", req.SourceLang).
		Str("target_lang", req.TargetLang)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	z.Msg("translate start")
}

func logEnd(r *http.Request, status int, dur time.Duration, err error) {
	z := zlog.Info().Int("status", status).Dur("dur", dur)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg("translate end")
}
