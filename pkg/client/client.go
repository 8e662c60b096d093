// Package client is the Go consumer of the employee self-service API. It
// mirrors what the mobile app does: log in, read the profile, file leave,
// and push a new profile image.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError carries the server's error envelope.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

type User struct {
	UserID   int      `json:"user_id"`
	UserName string   `json:"user_name"`
	BioID    int      `json:"bio_id"`
	Employee Employee `json:"employee"`
}

type Employee struct {
	EmpID       int     `json:"emp_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	MiddleName  string  `json:"middle_name"`
	ContactNo   string  `json:"b_cont_no"`
	Email       string  `json:"b_email"`
	UserImg     string  `json:"user_img"`
	Position    *string `json:"position_name"`
	Department  *string `json:"department_name"`
	AddedByName string  `json:"added_by_name"`
}

type LeaveType struct {
	LeaveTypeID   int    `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
}

type LeaveApplication struct {
	LeaveID       int    `json:"leave_id"`
	UUID          string `json:"uuid"`
	EmployeeID    int    `json:"employee_id"`
	LeaveTypeID   int    `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type ApplyLeaveInput struct {
	EmployeeID  int    `json:"employee_id"`
	LeaveTypeID int    `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

type UploadResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type Client struct {
	baseURL string
	http    *http.Client
	events  *ProfileEvents
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		events:  NewProfileEvents(),
	}
}

// Events exposes the stream of profile changes this client has made.
func (c *Client) Events() *ProfileEvents {
	return c.events
}

func (c *Client) Login(ctx context.Context, username, password string) (User, error) {
	body := map[string]string{"username": username, "password": password}

	var out struct {
		User User `json:"user"`
	}
	if err := c.postJSON(ctx, "/api/v1/auth/login", body, nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

func (c *Client) Profile(ctx context.Context, bioID int) (Employee, error) {
	q := url.Values{"bio_id": {strconv.Itoa(bioID)}}

	var out struct {
		Employee Employee `json:"employee"`
	}
	if err := c.getJSON(ctx, "/api/v1/employee/profile", q, &out); err != nil {
		return Employee{}, err
	}
	return out.Employee, nil
}

func (c *Client) LeaveTypes(ctx context.Context) ([]LeaveType, error) {
	var out struct {
		LeaveTypes []LeaveType `json:"leave_types"`
	}
	if err := c.getJSON(ctx, "/api/v1/leave/types", nil, &out); err != nil {
		return nil, err
	}
	return out.LeaveTypes, nil
}

// ApplyLeave files a leave request. A non-empty idempotencyKey lets the
// server replay the original result if the request is retried.
func (c *Client) ApplyLeave(ctx context.Context, input ApplyLeaveInput, idempotencyKey string) (LeaveApplication, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	var out struct {
		Leave LeaveApplication `json:"leave"`
	}
	if err := c.postJSON(ctx, "/api/v1/leave/apply", input, headers, &out); err != nil {
		return LeaveApplication{}, err
	}
	return out.Leave, nil
}

// UploadImage sends the image as multipart form data and emits a profile
// event on success.
func (c *Client) UploadImage(ctx context.Context, bioID int, filename, contentType string, data io.Reader) (UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("bio_id", strconv.Itoa(bioID)); err != nil {
		return UploadResult{}, err
	}
	if err := mw.WriteField("filename", filename); err != nil {
		return UploadResult{}, err
	}

	part, err := mw.CreatePart(imagePartHeader(filename, contentType))
	if err != nil {
		return UploadResult{}, err
	}
	if _, err := io.Copy(part, data); err != nil {
		return UploadResult{}, err
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/employee/image", &buf)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out UploadResult
	if err := c.do(req, &out); err != nil {
		return UploadResult{}, err
	}

	c.events.publish(ProfileEvent{BioID: bioID, Filename: out.Filename})

	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, headers map[string]string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, out)
}

// do runs the request and decodes the envelope. The server leans on the
// ok flag rather than status codes alone: a 200 with ok=false is still a
// failure and surfaces as an APIError.
func (c *Client) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	var envelope struct {
		OK      bool   `json:"ok"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response (%d): %w", res.StatusCode, err)
	}

	if !envelope.OK {
		return &APIError{
			Code:    envelope.Error,
			Message: envelope.Message,
			Status:  res.StatusCode,
		}
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}
