package consts

const (
	MIMETextPlain   = "text/plain"
	MIMEHTML        = "text/html"
	MIMEJSON        = "application/json"
	MIMEXML         = "application/xml"
	MIMEOctetStream = "application/octet-stream"
	MIMEFormData    = "application/x-www-form-urlencoded"
)
