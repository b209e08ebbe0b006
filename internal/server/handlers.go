package server

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/topsis/internal/table"
	"github.com/tensorplex-labs/topsis/internal/topsis"
	"github.com/tensorplex-labs/topsis/pkg/api"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(createResponse(api.HealthResponse{Status: "ok"}, nil))
}

func (s *Server) handleEvaluate(c *fiber.Ctx) error {
	startTime := time.Now()

	var req api.EvaluateRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		log.Error().Err(err).Str("route", api.EvaluatePath).Msg("Failed to parse request body")
		return c.Status(fiber.StatusBadRequest).
			JSON(createResponse(api.EvaluateResponse{}, fmt.Errorf("%w: invalid request body: %w", topsis.ErrMalformedInput, err)))
	}

	resp, err := s.evaluate(req)
	if err != nil {
		log.Warn().
			Err(err).
			Str("kind", topsis.Kind(err)).
			Str("route", api.EvaluatePath).
			Msg("evaluation rejected")
		return c.Status(statusFor(err)).JSON(createResponse(api.EvaluateResponse{}, err))
	}

	log.Debug().
		Int("alternatives", len(req.Rows)).
		Dur("elapsed", time.Since(startTime)).
		Msg("evaluation served")
	return c.JSON(createResponse(resp, nil))
}

func (s *Server) evaluate(req api.EvaluateRequest) (api.EvaluateResponse, error) {
	if len(req.Header) == 0 {
		return api.EvaluateResponse{}, fmt.Errorf("%w: request has no header", topsis.ErrMalformedInput)
	}

	records := make([][]string, 0, len(req.Rows)+1)
	records = append(records, req.Header)
	records = append(records, req.Rows...)

	tbl, err := table.FromRecords(records)
	if err != nil {
		return api.EvaluateResponse{}, err
	}

	weights, impacts, err := arguments(len(tbl.Criteria()), req)
	if err != nil {
		return api.EvaluateResponse{}, err
	}

	matrix, err := tbl.Matrix()
	if err != nil {
		return api.EvaluateResponse{}, err
	}

	res, err := s.evaluator.Evaluate(matrix, weights, impacts)
	if err != nil {
		return api.EvaluateResponse{}, err
	}

	resp := api.EvaluateResponse{
		Columns:    append(append([]string(nil), tbl.Header...), topsis.ScoreColumn, topsis.RankColumn),
		Rankings:   make([]api.Ranking, len(tbl.Rows)),
		IdealBest:  res.IdealBest,
		IdealWorst: res.IdealWorst,
	}
	for i, id := range tbl.Alternatives() {
		ranking := api.Ranking{Alternative: id, Rank: res.Ranks[i]}
		if score := res.Scores[i]; !math.IsNaN(score) {
			ranking.Score = &score
		}
		resp.Rankings[i] = ranking
	}

	return resp, nil
}

// arguments resolves the weights and impacts of req, each given either as a
// typed array or as a comma-separated string.
func arguments(criteria int, req api.EvaluateRequest) (topsis.Weights, topsis.Impacts, error) {
	if req.WeightsText != "" && req.ImpactsText != "" {
		weights, impacts, err := topsis.ParseArguments(criteria, req.WeightsText, req.ImpactsText)
		return weights, impacts, asInputError(err)
	}

	weights := topsis.Weights(req.Weights)
	if req.WeightsText != "" {
		w, err := topsis.ParseWeights(req.WeightsText)
		if err != nil {
			return nil, nil, asInputError(err)
		}
		weights = w
	}

	symbols := req.Impacts
	if req.ImpactsText != "" {
		symbols = strings.Split(req.ImpactsText, ",")
	}

	return topsis.ParseArgumentValues(criteria, weights, symbols)
}

// asInputError reports an unparsable weight as malformed input.
func asInputError(err error) error {
	if err != nil && !topsis.IsInputError(err) {
		return fmt.Errorf("%w: %w", topsis.ErrMalformedInput, err)
	}
	return err
}

func statusFor(err error) int {
	switch {
	case topsis.IsInputError(err):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, topsis.ErrUsage):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
