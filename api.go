package kodaklens

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kodaklens/kodaklens/caption"
	"github.com/kodaklens/kodaklens/report"
	"github.com/kodaklens/kodaklens/seo"
)

// apiEndpoint adapts h to the API error contract: client errors returned as
// *echo.HTTPError below 500 keep their status and message; anything else,
// panics included, is logged and answered with 500 and failMsg.
func (a *App) apiEndpoint(name, failMsg string, h echo.HandlerFunc) echo.HandlerFunc {
	log := a.Log.With(zap.String("endpoint", name))
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic", zap.Any("recovered", r), zap.Stack("stack"))
				err = c.JSON(http.StatusInternalServerError, errorBody{Error: failMsg})
			}
		}()

		err = h(c)
		if err == nil {
			return nil
		}
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			msg, _ := he.Message.(string)
			if msg == "" {
				msg = http.StatusText(he.Code)
			}
			return c.JSON(he.Code, errorBody{Error: msg})
		}
		log.Error(failMsg, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorBody{Error: failMsg})
	}
}

// decodeJSON reads the request body into v. Malformed JSON is a client error.
func decodeJSON(c echo.Context, v any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
	}
	return nil
}

type captionsRequest struct {
	ImageURL string `json:"imageUrl"`
	FileName string `json:"fileName"`
}

type captionsResponse struct {
	Success bool `json:"success"`
	caption.Result
}

func (a *App) handleCaptions(c echo.Context) error {
	var req captionsRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if req.ImageURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required field: imageUrl")
	}
	name := req.FileName
	if name == "" {
		name = caption.DefaultFileName
	}
	return c.JSON(http.StatusOK, captionsResponse{
		Success: true,
		Result:  caption.Generate(name),
	})
}

type reportRequest struct {
	StoryID string                     `json:"storyId"`
	Results map[string]json.RawMessage `json:"results"`
}

type reportResponse struct {
	Success  bool   `json:"success"`
	ReportID string `json:"reportId"`
	FilePath string `json:"filePath"`
}

func (a *App) handleReport(c echo.Context) error {
	var req reportRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if req.StoryID == "" || req.Results == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields: storyId and results")
	}

	_, filePath, err := a.Reports.Save(c.Request().Context(), req.StoryID, req.Results)
	if err != nil {
		if errors.Is(err, report.ErrInvalidID) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid storyId")
		}
		return fmt.Errorf("save report %q: %w", req.StoryID, err)
	}
	a.Metrics.ReportsSaved.Inc()

	return c.JSON(http.StatusOK, reportResponse{
		Success:  true,
		ReportID: req.StoryID,
		FilePath: filePath,
	})
}

type storedReportResponse struct {
	Success bool          `json:"success"`
	Report  report.Report `json:"report"`
}

func (a *App) handleGetReport(c echo.Context) error {
	id := c.Param("id")
	rep, err := a.Reports.Load(id)
	switch {
	case errors.Is(err, report.ErrInvalidID):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid storyId")
	case errors.Is(err, report.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Report not found")
	case err != nil:
		return fmt.Errorf("load report %q: %w", id, err)
	}
	return c.JSON(http.StatusOK, storedReportResponse{Success: true, Report: rep})
}

type reportsResponse struct {
	Reports []report.Entry `json:"reports"`
}

func (a *App) handleReports(c echo.Context) error {
	entries, err := a.Index.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	return c.JSON(http.StatusOK, reportsResponse{Reports: entries})
}

func (a *App) handleSEORules(c echo.Context) error {
	return c.JSON(http.StatusOK, seo.Default())
}
