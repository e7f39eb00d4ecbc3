package httpapi

import "internhunt-engine/internal/domain"

type PostingsResponse struct {
	Count int            `json:"count"`
	Items []domain.Entry `json:"items"`
}

type RunResponse struct {
	OK      bool   `json:"ok"`
	Started bool   `json:"started"`
	Msg     string `json:"msg,omitempty"`
}
