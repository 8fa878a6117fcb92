package httpclients

import (
	"resty.dev/v3"
	"vowboard.io/planner-gateway/app/utils/logger"
)

// NewClient returns a resty client tagged with name in its request logs.
func NewClient(name string) *resty.Client {
	client := resty.New()
	client.SetHeader("User-Agent", "vowboard-planner-gateway")
	client.AddResponseMiddleware(func(c *resty.Client, resp *resty.Response) error {
		logger.GetLogger().WithField("client", name).Debugf(
			"%s %s -> %d",
			resp.Request.Method,
			resp.Request.URL,
			resp.StatusCode(),
		)
		return nil
	})
	return client
}
