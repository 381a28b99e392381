package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim"
	"github.com/inference-sim/cpusim/sim/store"
)

// SchedulerHandler serves the scheduling endpoints.
type SchedulerHandler struct {
	defaults sim.Config
	runs     *store.RunStore // nil disables persistence and the /runs endpoints
}

// NewSchedulerHandler creates a handler. runs may be nil.
func NewSchedulerHandler(defaults sim.Config, runs *store.RunStore) *SchedulerHandler {
	return &SchedulerHandler{defaults: defaults, runs: runs}
}

func errorResponse(ctx *fiber.Ctx, status int, err error) error {
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// Policies lists every policy.
func (h *SchedulerHandler) Policies(ctx *fiber.Ctx) error {
	infos := make([]PolicyInfo, 0, len(sim.PolicyNames()))
	for _, name := range sim.PolicyNames() {
		infos = append(infos, PolicyInfo{
			Name:         name,
			Description:  sim.PolicyDescription(name),
			NeedsQuantum: sim.PolicyNeedsQuantum(name),
		})
	}
	return ctx.JSON(infos)
}

// Schedule runs the policy named in the path on the request's processes.
func (h *SchedulerHandler) Schedule(ctx *fiber.Ctx) error {
	policy := ctx.Params("policy")
	if !sim.IsValidPolicy(policy) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":    "unknown policy " + policy,
			"policies": sim.PolicyNames(),
		})
	}
	var request ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}

	resp, err := h.run(request.Processes, policy, request.config(h.defaults))
	if err != nil {
		return errorResponse(ctx, fiber.StatusBadRequest, err)
	}
	return ctx.JSON(resp)
}

// Compare runs every policy on the request's processes.
func (h *SchedulerHandler) Compare(ctx *fiber.Ctx) error {
	var request ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}

	cfg := request.config(h.defaults)
	out := CompareResponse{Results: make([]ScheduleResponse, 0, len(sim.PolicyNames()))}
	for _, policy := range sim.PolicyNames() {
		resp, err := h.run(request.Processes, policy, cfg)
		if err != nil {
			return errorResponse(ctx, fiber.StatusBadRequest, err)
		}
		out.Results = append(out.Results, *resp)
	}
	return ctx.JSON(out)
}

// ListRuns returns the stored runs.
func (h *SchedulerHandler) ListRuns(ctx *fiber.Ctx) error {
	runs, err := h.runs.ListRuns()
	if err != nil {
		logrus.Errorf("listing runs: %v", err)
		return errorResponse(ctx, fiber.StatusInternalServerError, err)
	}
	if runs == nil {
		runs = []store.RunRecord{}
	}
	return ctx.JSON(runs)
}

// GetRun returns one stored run with its per-process rows.
func (h *SchedulerHandler) GetRun(ctx *fiber.Ctx) error {
	run, err := h.runs.LoadRun(ctx.Params("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		return errorResponse(ctx, fiber.StatusNotFound, err)
	}
	if err != nil {
		logrus.Errorf("loading run: %v", err)
		return errorResponse(ctx, fiber.StatusInternalServerError, err)
	}
	return ctx.JSON(run)
}

// run executes one policy on a fresh simulator and stores the outcome when persistence is on.
func (h *SchedulerHandler) run(specs []sim.ProcessSpec, policy string, cfg sim.Config) (*ScheduleResponse, error) {
	res, err := sim.Run(specs, policy, cfg)
	if err != nil {
		return nil, err
	}
	summary, err := sim.SummarizeResult(res)
	if err != nil {
		return nil, err
	}
	resp := &ScheduleResponse{RunOutput: sim.NewRunOutput(res, summary)}
	if h.runs != nil {
		if resp.RunID, err = h.runs.SaveRun(res, summary); err != nil {
			logrus.Errorf("storing %s run: %v", policy, err)
		}
	}
	return resp, nil
}
