package handlers

import (
	"vidtube.com/pkg/errno"

	"github.com/cloudwego/hertz/pkg/app"
)

// Response is the uniform envelope of every endpoint. Success mirrors the
// status code: true exactly when 200 <= statusCode < 400.
type Response struct {
	StatusCode int64       `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// SendResponse packs err and data into the envelope. Domain errors keep
// their status code; unrecognized errors arrive here already collapsed to
// a generic 500 by errno.ConvertErr.
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	e := errno.ConvertErr(err)
	c.JSON(int(e.ErrCode), Response{
		StatusCode: e.ErrCode,
		Data:       data,
		Message:    e.ErrMsg,
		Success:    e.ErrCode >= 200 && e.ErrCode < 400,
	})
}
