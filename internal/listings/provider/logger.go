package provider

import (
	"log"
	"time"
)

// LogRequest logs an outgoing listings request for one ZIP.
func LogRequest(provider, zip string, params map[string]interface{}) {
	if len(params) > 0 {
		log.Printf("[%s] GET zip=%s params=%v", provider, zip, params)
	} else {
		log.Printf("[%s] GET zip=%s", provider, zip)
	}
}

// LogResponse logs a provider response for one ZIP.
func LogResponse(provider, zip string, statusCode int, duration time.Duration, resultCount int) {
	log.Printf("[%s] zip=%s status=%d duration=%dms listings=%d",
		provider, zip, statusCode, duration.Milliseconds(), resultCount)
}

// LogError logs a failed provider operation. The API key is never part of err.
func LogError(provider, zip, operation string, err error) {
	log.Printf("[%s] zip=%s %s error: %v", provider, zip, operation, err)
}

// LogTransform logs how many wire records became normalized listings.
func LogTransform(provider, zip string, inputCount, outputCount int, duration time.Duration) {
	log.Printf("[%s] zip=%s normalized %d -> %d listings in %dms",
		provider, zip, inputCount, outputCount, duration.Milliseconds())
}
