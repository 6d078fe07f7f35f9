package controller

import (
	"fmt"
	"strconv"
	"strings"
)

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}
	return strconv.ParseFloat(s, 64)
}

func parseIntParam(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
