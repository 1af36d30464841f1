package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ybblog/blog/internal/api/cookie"
	"github.com/ybblog/blog/internal/api/metrics"
	"github.com/ybblog/blog/internal/core/domain"
	"github.com/ybblog/blog/internal/core/ports"
)

const (
	msgNoArticles   = "No articles yet."
	msgNotFound     = "Article not found."
	msgNoMatches    = "No articles match your search."
	msgAdded        = "Article added."
	msgUpdated      = "Article updated."
	msgDeleted      = "Article deleted."
	msgCannotEdit   = "Article not found or you are not allowed to edit it."
	msgCannotDelete = "Article not found or you are not allowed to delete it."
)

// ArticleHandler handles HTTP requests for article pages.
type ArticleHandler struct {
	service ports.ArticleService
	flash   *cookie.Flasher
	log     zerolog.Logger
}

func NewArticleHandler(service ports.ArticleService, flash *cookie.Flasher, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{service: service, flash: flash, log: log}
}

// List renders every article.
//
// @Summary      List all articles
// @Tags         articles
// @Produce      json
// @Success      200  {object}  articlesPage
// @Failure      500  {object}  map[string]string
// @Router       /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	var notices []cookie.Flash
	if len(articles) == 0 {
		notices = append(notices, notice(cookie.Warning, msgNoArticles))
	}
	return c.JSON(http.StatusOK, articlesPage{
		page:     newPage(c, h.flash, "articles", notices...),
		Articles: articles,
	})
}

// Dashboard renders the articles written by the logged-in user.
//
// @Summary      Dashboard
// @Tags         articles
// @Produce      json
// @Success      200  {object}  articlesPage
// @Router       /dashboard [get]
func (h *ArticleHandler) Dashboard(c echo.Context) error {
	articles, err := h.service.ListByAuthor(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articlesPage{
		page:     newPage(c, h.flash, "dashboard"),
		Articles: articles,
	})
}

// Show renders one article. A missing article is a notice, not an error.
//
// @Summary      Article detail
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  articlePage
// @Router       /article/{id} [get]
func (h *ArticleHandler) Show(c echo.Context) error {
	id, ok := articleID(c)
	if !ok {
		return h.showMissing(c)
	}

	article, err := h.service.Get(c.Request().Context(), id)
	if errors.Is(err, domain.ErrArticleNotFound) {
		return h.showMissing(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articlePage{page: newPage(c, h.flash, "article"), Article: article})
}

func (h *ArticleHandler) showMissing(c echo.Context) error {
	return c.JSON(http.StatusOK, articlePage{
		page: newPage(c, h.flash, "article", notice(cookie.Warning, msgNotFound)),
	})
}

// AddForm renders the empty article form.
//
// @Summary      New article form
// @Tags         articles
// @Produce      json
// @Success      200  {object}  formPage
// @Router       /addarticle [get]
func (h *ArticleHandler) AddForm(c echo.Context) error {
	return c.JSON(http.StatusOK, formPage{page: newPage(c, h.flash, "addarticle"), Form: articleForm{}})
}

// Add creates an article owned by the logged-in user.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      ports.ArticleInput  true  "Article"
// @Success      303   {string}  string  "redirect to /dashboard"
// @Failure      422   {object}  formPage
// @Router       /addarticle [post]
func (h *ArticleHandler) Add(c echo.Context) error {
	var in ports.ArticleInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err := h.service.Create(c.Request().Context(), in, currentUser(c))
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return h.invalidForm(c, "addarticle", 0, in, verr)
		}
		return err
	}

	metrics.ArticlesCreatedTotal.Inc()
	h.flash.Add(c, cookie.Success, msgAdded)
	return redirect(c, "/dashboard")
}

// EditForm renders the edit form pre-filled with the stored article.
//
// @Summary      Edit article form
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  formPage
// @Success      302  {string}  string  "redirect to /login when missing or not owned"
// @Router       /edit/{id} [get]
func (h *ArticleHandler) EditForm(c echo.Context) error {
	article, err := h.editable(c)
	if err != nil {
		return err
	}
	if article == nil {
		return h.denyEdit(c)
	}

	return c.JSON(http.StatusOK, formPage{
		page:      newPage(c, h.flash, "edit"),
		ArticleID: article.ID,
		Form:      articleForm{Title: article.Title, Content: article.Content},
	})
}

// Edit updates the title and content of an article the user owns.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path      int                 true  "Article ID"
// @Param        body  body      ports.ArticleInput  true  "Article"
// @Success      303   {string}  string  "redirect to /dashboard"
// @Failure      422   {object}  formPage
// @Router       /edit/{id} [post]
func (h *ArticleHandler) Edit(c echo.Context) error {
	article, err := h.editable(c)
	if err != nil {
		return err
	}
	if article == nil {
		return h.denyEdit(c)
	}
	id := article.ID

	var in ports.ArticleInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err = h.service.Update(c.Request().Context(), id, in, currentUser(c))
	metrics.ArticleMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return h.invalidForm(c, "edit", id, in, verr)
		case errors.Is(err, domain.ErrArticleNotFound), errors.Is(err, domain.ErrForbidden):
			return h.denyEdit(c)
		}
		return err
	}

	h.flash.Add(c, cookie.Success, msgUpdated)
	return redirect(c, "/dashboard")
}

// editable returns the article behind :id when the session user owns it, or
// nil when it is missing or someone else's. Update re-checks ownership.
func (h *ArticleHandler) editable(c echo.Context) (*domain.Article, error) {
	id, ok := articleID(c)
	if !ok {
		return nil, nil
	}

	article, err := h.service.Get(c.Request().Context(), id)
	if errors.Is(err, domain.ErrArticleNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !article.OwnedBy(currentUser(c)) {
		return nil, nil
	}
	return article, nil
}

func (h *ArticleHandler) denyEdit(c echo.Context) error {
	h.flash.Add(c, cookie.Danger, msgCannotEdit)
	return redirect(c, "/login")
}

// Delete removes an article the user owns.
//
// @Summary      Delete an article
// @Tags         articles
// @Param        id   path      int  true  "Article ID"
// @Success      302  {string}  string  "redirect to /dashboard, or / when missing or not owned"
// @Router       /delete/{id} [get]
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, ok := articleID(c)
	if !ok {
		h.flash.Add(c, cookie.Danger, msgCannotDelete)
		return redirect(c, "/")
	}

	err := h.service.Delete(c.Request().Context(), id, currentUser(c))
	metrics.ArticleMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
	switch {
	case err == nil:
		h.flash.Add(c, cookie.Success, msgDeleted)
		return redirect(c, "/dashboard")
	case errors.Is(err, domain.ErrArticleNotFound), errors.Is(err, domain.ErrForbidden):
		h.flash.Add(c, cookie.Danger, msgCannotDelete)
		return redirect(c, "/")
	}
	return err
}

// SearchRedirect sends bare GET /search back to the home page.
//
// @Summary      Search (GET)
// @Tags         articles
// @Success      302  {string}  string  "redirect to /"
// @Router       /search [get]
func (h *ArticleHandler) SearchRedirect(c echo.Context) error {
	return redirect(c, "/")
}

// Search lists articles whose title contains the keyword.
//
// @Summary      Search articles by title
// @Tags         articles
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      searchRequest  true  "Keyword"
// @Success      200   {object}  articlesPage
// @Success      303   {string}  string  "redirect to / for an empty keyword"
// @Router       /search [post]
func (h *ArticleHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Keyword == "" {
		return redirect(c, "/")
	}

	articles, err := h.service.Search(c.Request().Context(), req.Keyword)
	if errors.Is(err, domain.ErrEmptyKeyword) {
		return redirect(c, "/")
	}
	if err != nil {
		return err
	}

	h.log.Debug().Str("keyword", req.Keyword).Int("matches", len(articles)).Msg("title search")

	var notices []cookie.Flash
	if len(articles) == 0 {
		metrics.SearchesTotal.WithLabelValues("miss").Inc()
		notices = append(notices, notice(cookie.Warning, msgNoMatches))
	} else {
		metrics.SearchesTotal.WithLabelValues("hit").Inc()
	}
	return c.JSON(http.StatusOK, articlesPage{
		page:     newPage(c, h.flash, "articles", notices...),
		Keyword:  req.Keyword,
		Articles: articles,
	})
}

func (h *ArticleHandler) invalidForm(c echo.Context, name string, id int64, in ports.ArticleInput, verr *domain.ValidationError) error {
	return c.JSON(http.StatusUnprocessableEntity, formPage{
		page:      newPage(c, h.flash, name),
		ArticleID: id,
		Form:      articleForm{Title: in.Title, Content: in.Content},
		Errors:    verr.Fields,
	})
}

func mutationResult(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrArticleNotFound):
		return "not_found"
	case errors.As(err, &verr):
		return "invalid"
	}
	return "error"
}
