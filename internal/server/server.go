// Package server exposes a Gateway over HTTP. It is the reference backend
// for remote mode: the REST adapter on the client side speaks exactly this
// API, so a deck CLI can sync against `deck serve` on another machine.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/example/deck/internal/ports/secondary"
)

// New builds an Echo instance with all board routes registered.
func New(gw secondary.Gateway) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	Register(e, gw)
	return e
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, gw secondary.Gateway) {
	e.GET("/healthz", healthz())

	e.GET("/api/boards", listBoards(gw))
	e.POST("/api/boards", createBoard(gw))
	e.PATCH("/api/boards/:id", updateBoard(gw))
	e.DELETE("/api/boards/:id", deleteBoard(gw))
	e.GET("/api/boards/:id/columns", listColumns(gw))
	e.GET("/api/boards/:id/cards", listCards(gw))

	e.POST("/api/columns", createColumn(gw))
	e.PATCH("/api/columns/:id", updateColumn(gw))
	e.DELETE("/api/columns/:id", deleteColumn(gw))

	e.POST("/api/cards", createCard(gw))
	e.PATCH("/api/cards/:id", updateCard(gw))
	e.DELETE("/api/cards/:id", deleteCard(gw))
	e.PUT("/api/cards/:id/tags/:tagID", attachTag(gw))
	e.DELETE("/api/cards/:id/tags/:tagID", detachTag(gw))

	e.GET("/api/tags", listTags(gw))
	e.POST("/api/tags", createTag(gw))
	e.DELETE("/api/tags/:id", deleteTag(gw))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func listBoards(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		boards, err := gw.ListBoards(c.Request().Context())
		if err != nil {
			return serverErr(c, err)
		}
		out := make([]boardDTO, 0, len(boards))
		for _, b := range boards {
			out = append(out, toBoardDTO(b))
		}
		return c.JSON(http.StatusOK, out)
	}
}

func createBoard(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		var dto boardDTO
		if err := c.Bind(&dto); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		created, err := gw.CreateBoard(c.Request().Context(), fromBoardDTO(dto))
		if err != nil {
			return serverErr(c, err)
		}
		return c.JSON(http.StatusCreated, toBoardDTO(created))
	}
}

func updateBoard(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		var fields boardFieldsDTO
		if err := c.Bind(&fields); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		updated, err := gw.UpdateBoard(c.Request().Context(), c.Param("id"), secondary.BoardFields{
			Title: fields.Title,
		})
		if err != nil {
			return notFoundOrServerErr(c, err)
		}
		return c.JSON(http.StatusOK, toBoardDTO(updated))
	}
}

func deleteBoard(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := gw.DeleteBoard(c.Request().Context(), c.Param("id")); err != nil {
			return notFoundOrServerErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func listColumns(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		cols, err := gw.ListColumns(c.Request().Context(), c.Param("id"))
		if err != nil {
			return serverErr(c, err)
		}
		out := make([]columnDTO, 0, len(cols))
		for _, col := range cols {
			out = append(out, toColumnDTO(col))
		}
		return c.JSON(http.StatusOK, out)
	}
}

func createColumn(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		var dto columnDTO
		if err := c.Bind(&dto); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		created, err := gw.CreateColumn(c.Request().Context(), fromColumnDTO(dto))
		if err != nil {
			return serverErr(c, err)
		}
		return c.JSON(http.StatusCreated, toColumnDTO(created))
	}
}

func updateColumn(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		var fields columnFieldsDTO
		if err := c.Bind(&fields); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		updated, err := gw.UpdateColumn(c.Request().Context(), c.Param("id"), secondary.ColumnFields{
			Title:    fields.Title,
			Position: fields.Position,
		})
		if err != nil {
			return notFoundOrServerErr(c, err)
		}
		return c.JSON(http.StatusOK, toColumnDTO(updated))
	}
}

func deleteColumn(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := gw.DeleteColumn(c.Request().Context(), c.Param("id")); err != nil {
			return notFoundOrServerErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func listCards(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		cards, err := gw.ListCards(c.Request().Context(), c.Param("id"))
		if err != nil {
			return serverErr(c, err)
		}
		out := make([]cardDTO, 0, len(cards))
		for _, card := range cards {
			out = append(out, toCardDTO(card))
		}
		return c.JSON(http.StatusOK, out)
	}
}

func createCard(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		var dto cardDTO
		if err := c.Bind(&dto); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		created, err := gw.CreateCard(c.Request().Context(), fromCardDTO(dto))
		if err != nil {
			return serverErr(c, err)
		}
		return c.JSON(http.StatusCreated, toCardDTO(created))
	}
}

func updateCard(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		var fields cardFieldsDTO
		if err := c.Bind(&fields); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		updated, err := gw.UpdateCard(c.Request().Context(), c.Param("id"), secondary.CardFields{
			Title:       fields.Title,
			Description: fields.Description,
			ColumnID:    fields.ColumnID,
			Position:    fields.Position,
		})
		if err != nil {
			return notFoundOrServerErr(c, err)
		}
		return c.JSON(http.StatusOK, toCardDTO(updated))
	}
}

func deleteCard(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := gw.DeleteCard(c.Request().Context(), c.Param("id")); err != nil {
			return notFoundOrServerErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func attachTag(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := gw.AttachTag(c.Request().Context(), c.Param("id"), c.Param("tagID")); err != nil {
			return serverErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func detachTag(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := gw.DetachTag(c.Request().Context(), c.Param("id"), c.Param("tagID")); err != nil {
			return serverErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func listTags(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		tags, err := gw.ListTags(c.Request().Context())
		if err != nil {
			return serverErr(c, err)
		}
		out := make([]tagDTO, 0, len(tags))
		for _, tg := range tags {
			out = append(out, toTagDTO(tg))
		}
		return c.JSON(http.StatusOK, out)
	}
}

func createTag(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		var dto tagDTO
		if err := c.Bind(&dto); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		created, err := gw.CreateTag(c.Request().Context(), fromTagDTO(dto))
		if err != nil {
			return serverErr(c, err)
		}
		return c.JSON(http.StatusCreated, toTagDTO(created))
	}
}

func deleteTag(gw secondary.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := gw.DeleteTag(c.Request().Context(), c.Param("id")); err != nil {
			return notFoundOrServerErr(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func serverErr(c echo.Context, err error) error {
	c.Logger().Error(err)
	return c.String(http.StatusInternalServerError, err.Error())
}

// The sqlite gateway reports missing rows as "... not found" errors; map
// those to 404 so clients can tell them from genuine failures.
func notFoundOrServerErr(c echo.Context, err error) error {
	if isNotFound(err) {
		return c.String(http.StatusNotFound, err.Error())
	}
	return serverErr(c, err)
}
