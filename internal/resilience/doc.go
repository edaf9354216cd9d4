// Package resilience groups the fault tolerance building blocks used around
// outbound calls: circuit breakers for the mail, captcha, and storage
// providers, and retry with exponential backoff for transient failures.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("resend"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return sendMessage()
//	})
//
//	err := retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
//	    return uploadAsset()
//	})
package resilience
