package usecase

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"marketplace_pagamentos/internal/domain/entities"
)

var (
	ErrInvalidInstallmentAmount = errors.New("invalid installment amount")
	ErrInvalidMaxInstallments   = errors.New("invalid max installments")
)

// installmentTolerance is the accepted drift, in minor units, between a
// caller-submitted installment total and the locally computed one. Covers
// cross-system floating/rounding differences.
const installmentTolerance = 10

// IInstallmentUseCase computes and validates installment pricing tables.
//
// All arithmetic is on integer minor units; intermediate interest math
// rounds half away from zero to the nearest unit.

type IInstallmentUseCase interface {
	Compute(totalMinorUnits int64, maxInstallments int) (entities.InstallmentCalculation, error)
	Validate(totalMinorUnits int64, installments int, claimedTotal int64) bool
}

type InstallmentUseCase struct {
	// schedule maps installment count -> interest rate (%). Missing
	// counts default to 0%; single-installment is always 0%.
	schedule map[int]float64
}

var _ IInstallmentUseCase = (*InstallmentUseCase)(nil)

func NewInstallmentUseCase(schedule map[int]float64) *InstallmentUseCase {
	if schedule == nil {
		schedule = map[int]float64{}
	}
	return &InstallmentUseCase{schedule: schedule}
}

func (u *InstallmentUseCase) Compute(totalMinorUnits int64, maxInstallments int) (entities.InstallmentCalculation, error) {
	if totalMinorUnits <= 0 {
		return entities.InstallmentCalculation{}, ErrInvalidInstallmentAmount
	}
	if maxInstallments <= 0 {
		return entities.InstallmentCalculation{}, ErrInvalidMaxInstallments
	}

	calc := entities.InstallmentCalculation{
		OriginalValue: totalMinorUnits,
		Options:       make([]entities.InstallmentOption, 0, maxInstallments),
	}

	for count := 1; count <= maxInstallments; count++ {
		rate := 0.0
		if count > 1 {
			rate = u.schedule[count]
		}

		total := totalMinorUnits
		if rate > 0 {
			total = roundHalfAway(float64(totalMinorUnits) * (1 + rate/100))
		}
		per := roundHalfAway(float64(total) / float64(count))

		calc.Options = append(calc.Options, entities.InstallmentOption{
			Installments:     count,
			Total:            total,
			InstallmentValue: per,
			InterestRate:     rate,
			HasInterest:      rate > 0,
			Label:            installmentLabel(count, per, rate > 0),
		})
	}
	return calc, nil
}

// Validate recomputes the table for the chosen count and accepts the
// claimed total when it is within installmentTolerance minor units of the
// computed one. Fails closed: unknown count or bad input is invalid.
func (u *InstallmentUseCase) Validate(totalMinorUnits int64, installments int, claimedTotal int64) bool {
	calc, err := u.Compute(totalMinorUnits, installments)
	if err != nil {
		return false
	}
	opt, ok := calc.Option(installments)
	if !ok {
		return false
	}
	diff := claimedTotal - opt.Total
	if diff < 0 {
		diff = -diff
	}
	return diff <= installmentTolerance
}

func roundHalfAway(v float64) int64 {
	return int64(math.Round(v))
}

// installmentLabel renders the retail-style pt-BR label, e.g.
// "3x de R$ 38,13 com juros".
func installmentLabel(count int, perInstallment int64, hasInterest bool) string {
	suffix := "sem juros"
	if hasInterest {
		suffix = "com juros"
	}
	return fmt.Sprintf("%dx de %s %s", count, formatCentavos(perInstallment), suffix)
}

func formatCentavos(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, v/100, v%100)
}

// ParseInterestSchedule parses the "count:rate,count:rate" configuration
// form (e.g. "2:0,3:14.40,6:19.90"). Malformed entries are skipped.
func ParseInterestSchedule(raw string) map[int]float64 {
	schedule := map[int]float64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(kv[0]))
		if err != nil || count < 1 {
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil || rate < 0 {
			continue
		}
		schedule[count] = rate
	}
	return schedule
}

// ScheduleCounts returns the configured counts in ascending order. Used
// for logging the effective schedule at startup.
func ScheduleCounts(schedule map[int]float64) []int {
	counts := make([]int, 0, len(schedule))
	for c := range schedule {
		counts = append(counts, c)
	}
	sort.Ints(counts)
	return counts
}
