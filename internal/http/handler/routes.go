package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"billapi/internal/http/middleware"
	"billapi/internal/model"
	"billapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: identity and raw input extraction here, everything
// else in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, subSvc service.SubmissionService, revSvc service.ReviewService, sessions *service.DashboardSessions) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Employee-facing submission pipeline
	app.Post("/bills/attachments", AttachReceipt(subSvc))
	app.Get("/bills", ListBills(subSvc))
	app.Get("/bills/page", ListBillsPage(subSvc))
	app.Put("/bills/:id", SubmitBill(subSvc))

	// Manager-facing review workflow
	app.Get("/dashboard/bills", DashboardBills(revSvc))
	app.Get("/dashboard", DashboardView(revSvc, sessions))
	app.Post("/dashboard/sections/:status/toggle", ToggleSection(revSvc, sessions))
	app.Post("/dashboard/bills/:id/select", SelectBill(revSvc, sessions))
	app.Post("/dashboard/bills/:id/accept", AcceptBill(revSvc))
	app.Post("/dashboard/bills/:id/refuse", RefuseBill(revSvc))
	app.Delete("/dashboard/session", DropDashboard(sessions))
}

// HealthCheck reports readiness: DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// AttachReceipt uploads a receipt image (multipart/form-data, field name:
// file) and answers with the attachment key and download URL. The file's
// content type is forwarded as received; none is forced.
func AttachReceipt(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.SessionEmail(c)
		if email == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		att, err := svc.AttachReceipt(c.UserContext(), email, f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
		if err != nil {
			var extErr *service.ExtensionError
			if errors.As(err, &extErr) {
				return writeError(c, fiber.StatusUnprocessableEntity, "EXTENSION_NOT_ALLOWED", extErr.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(att)
	}
}

// SubmitBill fills a previously attached bill with the expense form values.
func SubmitBill(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.SessionEmail(c)
		if email == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var form service.SubmissionForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		bill, err := svc.Submit(c.UserContext(), id, email, form)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidAmount):
				return writeError(c, fiber.StatusBadRequest, "INVALID_AMOUNT", err.Error())
			case errors.Is(err, service.ErrBillNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "bill not found")
			}
			var formErr *service.FormError
			if errors.As(err, &formErr) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", formErr.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(bill)
	}
}

// ListBills returns the current employee's bills ordered by bill date.
// Query param direction is asc or desc, default desc; anything else is
// rejected rather than silently defaulted.
func ListBills(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.SessionEmail(c)
		if email == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
		}

		direction := model.SortDirection(c.Query("direction", string(model.SortDesc)))

		bills, err := svc.ListByEmail(c.UserContext(), email, direction)
		if err != nil {
			if errors.Is(err, model.ErrInvalidDirection) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DIRECTION", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(bills)
	}
}

// ListBillsPage lists bills with limit & offset.
func ListBillsPage(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListPage(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// DashboardBills returns every bill for the manager dashboard. A repository
// failure is propagated: the response carries the underlying message so the
// dashboard can render it.
func DashboardBills(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if middleware.SessionEmail(c) == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
		}

		bills, err := svc.ListAll(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		}
		return c.JSON(bills)
	}
}

// renderDashboard loads bills and renders the manager's current view state.
func renderDashboard(c *fiber.Ctx, svc service.ReviewService, sessions *service.DashboardSessions, email string) error {
	bills, err := svc.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
	return c.JSON(sessions.Get(email).View(bills, email, svc))
}

// DashboardView renders the manager's dashboard: per-status sections with
// their expand state and cards, plus the detail/placeholder side panel.
func DashboardView(svc service.ReviewService, sessions *service.DashboardSessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.SessionEmail(c)
		if email == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
		}
		return renderDashboard(c, svc, sessions, email)
	}
}

// ToggleSection flips a status section between collapsed and expanded and
// answers with the re-rendered dashboard.
func ToggleSection(svc service.ReviewService, sessions *service.DashboardSessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.SessionEmail(c)
		if email == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
		}

		status := model.BillStatus(c.Params("status"))
		if !status.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "unknown status category")
		}

		sessions.Get(email).ToggleSection(status)
		return renderDashboard(c, svc, sessions, email)
	}
}

// SelectBill toggles the single-bill selection and answers with the
// re-rendered dashboard.
func SelectBill(svc service.ReviewService, sessions *service.DashboardSessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.SessionEmail(c)
		if email == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		sessions.Get(email).SelectBill(id)
		return renderDashboard(c, svc, sessions, email)
	}
}

// decisionRequest is the accept/refuse body.
type decisionRequest struct {
	CommentAdmin string `json:"commentAdmin"`
}

func decide(c *fiber.Ctx, apply func(ctx context.Context, id, comment string) (*model.Bill, error)) error {
	if middleware.SessionEmail(c) == "" {
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	var req decisionRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
	}

	bill, err := apply(c.UserContext(), id, req.CommentAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBillNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "bill not found")
		case errors.Is(err, service.ErrBadTransition):
			return writeError(c, fiber.StatusConflict, "BAD_TRANSITION", err.Error())
		}
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return c.JSON(bill)
}

// AcceptBill transitions a pending bill to accepted with the manager's comment.
func AcceptBill(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return decide(c, svc.Accept)
	}
}

// RefuseBill transitions a pending bill to refused with the manager's comment.
func RefuseBill(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return decide(c, svc.Refuse)
	}
}

// DropDashboard discards the manager's ephemeral dashboard state, e.g. on
// navigation away.
func DropDashboard(sessions *service.DashboardSessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.SessionEmail(c)
		if email == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "session email is required")
		}
		sessions.Drop(email)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
