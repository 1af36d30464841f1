package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ybblog/blog/internal/api/cookie"
)

// PageHandler serves the static pages.
type PageHandler struct {
	flash *cookie.Flasher
}

func NewPageHandler(flash *cookie.Flasher) *PageHandler {
	return &PageHandler{flash: flash}
}

// Index renders the home page.
//
// @Summary      Home page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  page
// @Router       / [get]
func (h *PageHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, newPage(c, h.flash, "index"))
}

// About renders the about page.
//
// @Summary      About page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  page
// @Router       /about [get]
func (h *PageHandler) About(c echo.Context) error {
	return c.JSON(http.StatusOK, newPage(c, h.flash, "about"))
}
