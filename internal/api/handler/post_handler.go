package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/community-board/internal/core/ports"
)

// PostHandler serves the community feed.
type PostHandler struct {
	posts  ports.PostService
	images ports.ImageService
}

func NewPostHandler(posts ports.PostService, images ports.ImageService) *PostHandler {
	return &PostHandler{posts: posts, images: images}
}

// List handles GET /posts.
//
// @Summary      List feed posts
// @Tags         posts
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive match on text and tags"
// @Param        sort    query     string  false  "latest (default) or popular"
// @Param        offset  query     int     false  "Items to skip"
// @Param        limit   query     int     false  "Maximum items, 0 for all"
// @Success      200     {object}  listResponse[postResponse]
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	var q listPostsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	posts := h.posts.List(ports.ListPostsFilter{
		Search: q.Search,
		Sort:   ports.PostSort(q.Sort),
		Offset: q.Offset,
		Limit:  q.Limit,
	})
	return c.JSON(http.StatusOK, mapList(posts, toPostResponse))
}

// Create handles POST /posts. A multipart request may carry an "image" file.
//
// @Summary      Publish a post
// @Tags         posts
// @Accept       json,mpfd
// @Produce      json
// @Param        body   body      createPostRequest  true   "Post"
// @Param        image  formData  file               false  "Optional image"
// @Success      201    {object}  postResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	image, err := h.readImage(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), ports.CreatePostInput{
		Text:     req.Text,
		AuthorID: user.ID,
		Image:    image,
		Tags:     req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPostResponse(*post))
}

// readImage processes the optional multipart "image" field.
func (h *PostHandler) readImage(c echo.Context) (*string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "failed to read image file")
	}
	defer f.Close()

	payload, err := h.images.Process(c.Request().Context(), f, fh.Size)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// ToggleLike handles POST /posts/:id/like.
//
// @Summary      Like or unlike a post
// @Tags         posts
// @Param        id   path  string  true  "Post id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if err := h.posts.ToggleLike(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddComment handles POST /posts/:id/comments.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Post id"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.posts.AddComment(c.Request().Context(), c.Param("id"), user.ID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(*comment))
}
