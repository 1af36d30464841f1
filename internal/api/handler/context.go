package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ybblog/blog/internal/api/cookie"
	"github.com/ybblog/blog/internal/api/middleware"
)

// currentUser returns the username of the logged-in session, or "".
func currentUser(c echo.Context) string {
	if sess := middleware.SessionFrom(c); sess != nil {
		return sess.Username
	}
	return ""
}

// newPage builds the shared page model: carried-over flashes first, then the
// notices raised while handling this request.
func newPage(c echo.Context, flash *cookie.Flasher, name string, notices ...cookie.Flash) page {
	flashes := append(flash.Pop(c), notices...)
	if flashes == nil {
		flashes = []cookie.Flash{}
	}
	return page{Page: name, User: currentUser(c), Flashes: flashes}
}

func notice(category, message string) cookie.Flash {
	return cookie.Flash{Category: category, Message: message}
}

// redirect answers POST with 303 See Other and everything else with 302 Found.
func redirect(c echo.Context, to string) error {
	if c.Request().Method == http.MethodPost {
		return c.Redirect(http.StatusSeeOther, to)
	}
	return c.Redirect(http.StatusFound, to)
}

// articleID parses the :id path parameter. Non-numeric or non-positive ids
// report false and are treated as not found.
func articleID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
