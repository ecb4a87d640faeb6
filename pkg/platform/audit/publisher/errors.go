package publisher

import "errors"

var ErrClosed = errors.New("audit publisher closed")
