package handler

import (
	"Service_Monitor/internal/service-monitor/api/dto/response"
	apperrors "Service_Monitor/internal/service-monitor/errors"
	"Service_Monitor/internal/service-monitor/model"
	"Service_Monitor/internal/service-monitor/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=monitor_handler.go -destination=../../mocks/api/handler/mock_monitor_handler.go -package=mockhandler
type MonitorHandler interface {
	GetStatus() gin.HandlerFunc
	GetHistory() gin.HandlerFunc
	ExportStatus() gin.HandlerFunc
	Health() gin.HandlerFunc
}

type monitorHandler struct {
	title          string
	monitorService service.MonitorService
	logger         Logger
}

func (h *monitorHandler) GetStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := h.monitorService.GetStatus(c)
		if err != nil {
			err = fmt.Errorf("MonitorHandler.GetStatus: %w", err)
			h.logger.LoggingError(c, err, "failed to get services status", zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		res := response.StatusResponse{
			Title:    h.title,
			Services: make([]response.ServiceStatusResponse, 0, len(snapshot.Services)),
			Summary: response.SummaryResponse{
				Total:   snapshot.Summary.Total,
				Up:      snapshot.Summary.Up,
				Down:    snapshot.Summary.Down,
				Unknown: snapshot.Summary.Unknown,
			},
		}
		for _, s := range snapshot.Services {
			res.Services = append(res.Services, response.ServiceStatusResponse{
				ID:                  s.Config.ID,
				Name:                s.Config.Name,
				Endpoint:            s.Config.Endpoint,
				TimeoutMs:           s.Config.Timeout.Milliseconds(),
				ExpectedStatus:      s.Config.ExpectedStatusCode,
				Status:              s.State.Status,
				LastCheck:           s.State.LastCheckAt,
				LastSuccess:         s.State.LastSuccessAt,
				TotalChecks:         s.State.TotalChecks,
				SuccessfulChecks:    s.State.SuccessfulChecks,
				Uptime:              s.State.UptimePercent,
				ConsecutiveFailures: s.State.ConsecutiveFailures,
				History:             toCheckResponses(s.State.History),
			})
		}
		c.JSON(http.StatusOK, res)
	}
}

func (h *monitorHandler) GetHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("serviceId")
		history, err := h.monitorService.GetHistory(c, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrServiceNotFound) {
				c.JSON(http.StatusNotFound, response.Response{
					Message: "Service not found",
				})
				return
			}
			err = fmt.Errorf("MonitorHandler.GetHistory: %w", err)
			h.logger.LoggingError(c, err, fmt.Sprintf("failed to get history of service %s", id), zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		c.JSON(http.StatusOK, response.HistoryResponse{
			ServiceID: id,
			History:   toCheckResponses(history),
		})
	}
}

func (h *monitorHandler) ExportStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := h.monitorService.GetStatus(c)
		if err != nil {
			err = fmt.Errorf("MonitorHandler.ExportStatus: %w", err)
			h.logger.LoggingError(c, err, "failed to export services status", zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		file, err := h.generateExcelFile(snapshot)
		if err != nil {
			err = fmt.Errorf("MonitorHandler.ExportStatus: %w", err)
			h.logger.LoggingError(c, err, "failed to export services status", zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		defer file.Close()
		fileName := fmt.Sprintf("services-status-%s.xlsx", time.Now().Format("2006-01-02T15:04:05"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
		if err = file.Write(c.Writer); err != nil {
			err = fmt.Errorf("MonitorHandler.ExportStatus: %w", err)
			h.logger.LoggingError(c, err, "failed to write export file", zap.ErrorLevel)
			return
		}
		c.Status(http.StatusOK)
	}
}

const (
	servicesSheet = "Services"
	summarySheet  = "Summary"
)

func (h *monitorHandler) generateExcelFile(snapshot model.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	err := f.SetSheetName(f.GetSheetName(0), servicesSheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	headers := []interface{}{"id", "name", "endpoint", "status", "uptime", "total_checks", "successful_checks", "consecutive_failures", "last_check", "last_success"}
	if err = f.SetSheetRow(servicesSheet, "A1", &headers); err != nil {
		f.Close()
		return nil, err
	}
	for i, s := range snapshot.Services {
		rowData := []interface{}{
			s.Config.ID,
			s.Config.Name,
			s.Config.Endpoint,
			s.State.Status,
			s.State.UptimePercent,
			s.State.TotalChecks,
			s.State.SuccessfulChecks,
			s.State.ConsecutiveFailures,
			formatTime(s.State.LastCheckAt),
			formatTime(s.State.LastSuccessAt),
		}
		if err = f.SetSheetRow(servicesSheet, fmt.Sprintf("A%d", i+2), &rowData); err != nil {
			f.Close()
			return nil, err
		}
	}

	if _, err = f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	summary := [][]interface{}{
		{"title", h.title},
		{"total", snapshot.Summary.Total},
		{"up", snapshot.Summary.Up},
		{"down", snapshot.Summary.Down},
		{"unknown", snapshot.Summary.Unknown},
	}
	for i, row := range summary {
		if err = f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func (h *monitorHandler) Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.HealthResponse{
			Status: "ok",
			Uptime: h.monitorService.Uptime().Seconds(),
		})
	}
}

func toCheckResponses(checks []model.CheckResult) []response.CheckResponse {
	res := make([]response.CheckResponse, 0, len(checks))
	for _, check := range checks {
		res = append(res, response.CheckResponse{
			Timestamp:      check.Timestamp,
			Status:         check.Status,
			ResponseTimeMs: check.ResponseTimeMs,
			Error:          check.Error,
		})
	}
	return res
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func NewMonitorHandler(title string, monitorService service.MonitorService, logger Logger) MonitorHandler {
	return &monitorHandler{
		title:          title,
		monitorService: monitorService,
		logger:         logger,
	}
}
