package utils

import (
	"fmt"
	"log"

	"github.com/getsentry/sentry-go"
)

// InitSentry enables error reporting. Callers flush with sentry.Flush on
// shutdown.
func InitSentry(dsn, environment, release string) error {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          "salon-wellness@" + release,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

// CaptureError logs err and reports it to Sentry with the given extras.
func CaptureError(err error, context map[string]interface{}) {
	CaptureErrorOn(sentry.CurrentHub(), err, context)
}

// CaptureErrorOn is CaptureError on a specific hub, such as a request's.
func CaptureErrorOn(hub *sentry.Hub, err error, context map[string]interface{}) {
	if err == nil {
		return
	}
	log.Printf("error: %v %v", err, context)
	if hub != nil && hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range context {
				scope.SetExtra(k, v)
			}
			hub.CaptureException(err)
		})
	}
}
