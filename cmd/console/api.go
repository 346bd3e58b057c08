package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bunkerhq/bunker-engine/pkg/game"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// apiError extracts the error payload of a non-2xx response.
func apiError(status int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("%s", errorResp.Error)
}

func doJSON(client *http.Client, method, url string, reqBody interface{}, out interface{}) error {
	var reader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func createSession(client *http.Client, baseURL, channelID string) (game.Summary, error) {
	var sum game.Summary
	err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions",
		map[string]string{"channel_id": channelID}, &sum)
	return sum, err
}

func getSummary(client *http.Client, baseURL, channelID string) (game.Summary, error) {
	var sum game.Summary
	err := doJSON(client, http.MethodGet, baseURL+"/v1/sessions/"+channelID, nil, &sum)
	return sum, err
}

func deleteSession(client *http.Client, baseURL, channelID string) (game.Summary, error) {
	var sum game.Summary
	err := doJSON(client, http.MethodDelete, baseURL+"/v1/sessions/"+channelID, nil, &sum)
	return sum, err
}

func joinPlayer(client *http.Client, baseURL, channelID, playerID, name string) error {
	return doJSON(client, http.MethodPost, baseURL+"/v1/sessions/"+channelID+"/players",
		map[string]string{"player_id": playerID, "name": name}, nil)
}

func leavePlayer(client *http.Client, baseURL, channelID, playerID string) error {
	return doJSON(client, http.MethodDelete,
		baseURL+"/v1/sessions/"+channelID+"/players/"+playerID, nil, nil)
}

func startGame(client *http.Client, baseURL, channelID string) (game.Summary, error) {
	var sum game.Summary
	err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions/"+channelID+"/start", nil, &sum)
	return sum, err
}

func advanceRound(client *http.Client, baseURL, channelID string) (int, error) {
	var resp map[string]int
	err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions/"+channelID+"/rounds", nil, &resp)
	return resp["round"], err
}

func openVote(client *http.Client, baseURL, channelID string) (int, error) {
	var resp map[string]int
	err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions/"+channelID+"/votes", nil, &resp)
	return resp["expected"], err
}

// BallotResponse mirrors the ballot endpoint's payload.
type BallotResponse struct {
	Cast     int           `json:"cast"`
	Expected int           `json:"expected"`
	Resolved bool          `json:"resolved"`
	Outcome  *game.Outcome `json:"outcome,omitempty"`
}

func castBallot(client *http.Client, baseURL, channelID, voterID, targetID string) (BallotResponse, error) {
	var resp BallotResponse
	err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions/"+channelID+"/votes/ballots",
		map[string]string{"voter_id": voterID, "target_id": targetID}, &resp)
	return resp, err
}

func resolveVote(client *http.Client, baseURL, channelID string) (game.Outcome, error) {
	var outcome game.Outcome
	err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions/"+channelID+"/votes/resolve", nil, &outcome)
	return outcome, err
}

// VoteTallyResponse mirrors the vote tally endpoint's payload.
type VoteTallyResponse struct {
	Tally    map[string]int `json:"tally"`
	Cast     int            `json:"cast"`
	Expected int            `json:"expected"`
}

func getVoteTally(client *http.Client, baseURL, channelID string) (VoteTallyResponse, error) {
	var resp VoteTallyResponse
	err := doJSON(client, http.MethodGet, baseURL+"/v1/sessions/"+channelID+"/votes", nil, &resp)
	return resp, err
}

// RevealResponse mirrors the reveal endpoint's payload.
type RevealResponse struct {
	PlayerID  string `json:"player_id"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Changed   bool   `json:"changed"`
}

func revealAttribute(client *http.Client, baseURL, channelID, playerID, attribute string) (RevealResponse, error) {
	var resp RevealResponse
	err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions/"+channelID+"/reveals",
		map[string]string{"player_id": playerID, "attribute": attribute}, &resp)
	return resp, err
}

// CardResponse mirrors the card endpoint's payload.
type CardResponse struct {
	PlayerID string `json:"player_id"`
	View     string `json:"view"`
	Card     string `json:"card"`
}

func getCard(client *http.Client, baseURL, channelID, playerID, view string) (CardResponse, error) {
	var resp CardResponse
	url := baseURL + "/v1/sessions/" + channelID + "/players/" + playerID + "/card"
	if view != "" {
		url += "?view=" + view
	}
	err := doJSON(client, http.MethodGet, url, nil, &resp)
	return resp, err
}

// BunkerResponse mirrors the bunker endpoint's payload.
type BunkerResponse struct {
	Briefing string       `json:"briefing"`
	Bunker   *game.Bunker `json:"bunker"`
}

func getBunker(client *http.Client, baseURL, channelID string) (BunkerResponse, error) {
	var resp BunkerResponse
	err := doJSON(client, http.MethodGet, baseURL+"/v1/sessions/"+channelID+"/bunker", nil, &resp)
	return resp, err
}

func getAnalysis(client *http.Client, baseURL, channelID string) (string, error) {
	var resp struct {
		Analysis string `json:"analysis"`
	}
	err := doJSON(client, http.MethodPost, baseURL+"/v1/sessions/"+channelID+"/analysis", nil, &resp)
	return resp.Analysis, err
}
