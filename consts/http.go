package consts

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodConnect = "CONNECT"
	MethodTrace   = "TRACE"
)

const (
	HTTP  = "http"
	HTTPS = "https"
	HTTP1 = "HTTP/1.1"
	HTTP2 = "HTTP/2.0"
	OK200 = "200 OK"

	ProtocolTCP = "tcp"
	ProtocolUDP = "udp"

	SchemeDelimiter = "://"
	Localhost       = "localhost"
	CRLF            = "\r\n"

	// Canned responses for requests we refuse to dispatch.
	HTTPBadRequest     = "HTTP/1.1 400 Bad Request\r\n\r\n"
	HTTPEntityTooLarge = "HTTP/1.1 413 Request Entity Too Large\r\nContent-Length: 12\r\n\r\nBody too big"
)

const (
	StatusOK                    = 200
	StatusMovedPermanently      = 301
	StatusFound                 = 302
	StatusTemporaryRedirect     = 307
	StatusBadRequest            = 400
	StatusUnauthorized          = 401
	StatusForbidden             = 403
	StatusNotFound              = 404
	StatusRequestEntityTooLarge = 413
	StatusInternalServerError   = 500
)

const (
	RuneColon       = ':'
	RuneNewLine     = '\n'
	RuneSingleSpace = ' '
	RuneFwdSlash    = '/'
	RuneQuestion    = '?'
)

const (
	HeaderAccept           = "Accept"
	HeaderAcceptEncoding   = "Accept-Encoding"
	HeaderConnection       = "Connection"
	HeaderContentEncoding  = "Content-Encoding"
	HeaderContentLength    = "Content-Length"
	HeaderContentType      = "Content-Type"
	HeaderCookie           = "Cookie"
	HeaderDate             = "Date"
	HeaderHost             = "Host"
	HeaderLocation         = "Location"
	HeaderServer           = "Server"
	HeaderSetCookie        = "Set-Cookie"
	HeaderTransferEncoding = "Transfer-Encoding"
	HeaderUserAgent        = "User-Agent"
)
