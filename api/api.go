package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/logger"
	"github.com/block/datatables-go/metrics"
	"github.com/block/datatables-go/parsers"
	"github.com/block/datatables-go/pagination"
	"github.com/block/datatables-go/rate"
	"github.com/block/datatables-go/retry"
)

const (
	headerCorrelationId = "x-correlation-id"

	// maxListPerPage is the documented page size ceiling of the
	// management list endpoints.
	maxListPerPage = 100
)

// Config carries what every resource client shares. Zero fields fall back
// to defaults: a plain http.Client, no logging, no rate limiting,
// the default retry policy and a fresh UUID per request.
type Config struct {
	HttpClient    *http.Client
	Logger        logger.Logger
	Limiter       rate.Limiter
	Retry         retry.Retry
	Metrics       metrics.Recorder
	CorrelationId func() string
}

type apiClient struct {
	apiToken      string
	baseUrl       string
	httpClient    *http.Client
	logger        logger.Logger
	limiter       rate.Limiter
	retry         retry.Retry
	metrics       metrics.Recorder
	correlationId func() string
}

func newApiClient(apiToken string, baseUrl string, cfg Config) *apiClient {
	c := &apiClient{
		apiToken:      apiToken,
		baseUrl:       strings.TrimRight(baseUrl, "/"),
		httpClient:    cfg.HttpClient,
		logger:        cfg.Logger,
		limiter:       cfg.Limiter,
		retry:         cfg.Retry,
		metrics:       cfg.Metrics,
		correlationId: cfg.CorrelationId,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = &logger.Noop{}
	}
	if c.limiter == nil {
		c.limiter = &rate.NoopLimiter{}
	}
	if c.metrics == nil {
		c.metrics = &metrics.Noop{}
	}
	if c.retry == nil {
		c.retry = retry.NewBackoffRetry(
			retry.WithLogger(c.logger),
			retry.WithMetrics(c.metrics),
		)
	}
	if c.correlationId == nil {
		c.correlationId = uuid.NewString
	}
	return c
}

// do runs fn through the retry policy.
func (c *apiClient) do(fnName string, fn func() *errors.ApiError) error {
	return c.retry.Do(fnName, func(_ int) error {
		return nilErr(fn())
	})
}

func (c *apiClient) getJson(path string, query url.Values, resData any) *errors.ApiError {
	return c.sendJson(http.MethodGet, path, query, nil, resData)
}

func (c *apiClient) postJson(path string, reqData, resData any) *errors.ApiError {
	return c.sendJson(http.MethodPost, path, nil, reqData, resData)
}

func (c *apiClient) putJson(path string, reqData, resData any) *errors.ApiError {
	return c.sendJson(http.MethodPut, path, nil, reqData, resData)
}

func (c *apiClient) deleteJson(path string, resData any) *errors.ApiError {
	return c.sendJson(http.MethodDelete, path, nil, nil, resData)
}

// sendJson decodes a 2xx body into resData. An empty body leaves resData
// untouched.
func (c *apiClient) sendJson(
	httpMethod string,
	path string,
	query url.Values,
	reqData any,
	resData any,
) *errors.ApiError {
	body, err := c.send(httpMethod, path, query, reqData)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 || resData == nil {
		return nil
	}
	jsonErr := json.Unmarshal(body, resData)
	if jsonErr != nil {
		return &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_JSON_PARSE,
			SourceErr:      jsonErr,
			Body:           body,
			HttpStatusCode: http.StatusOK,
			Method:         httpMethod,
			Url:            c.url(path, query),
		}
	}
	return nil
}

func (c *apiClient) send(
	httpMethod string,
	path string,
	query url.Values,
	reqData any,
) ([]byte, *errors.ApiError) {
	endpoint := c.url(path, query)
	cid := c.correlationId()

	var err error
	var req *http.Request

	if reqData != nil {
		data, jsonErr := json.Marshal(reqData)
		if jsonErr != nil {
			return nil, &errors.ApiError{
				Stage:         errors.STAGE_BEFORE_REQUEST,
				Type:          errors.TYPE_JSON_PARSE,
				SourceErr:     jsonErr,
				Method:        httpMethod,
				Url:           endpoint,
				CorrelationId: cid,
			}
		}
		req, err = http.NewRequest(
			httpMethod, endpoint, bytes.NewBuffer(data),
		)
	} else {
		req, err = http.NewRequest(
			httpMethod, endpoint, nil,
		)
	}

	if err != nil {
		return nil, &errors.ApiError{
			Stage:         errors.STAGE_BEFORE_REQUEST,
			Type:          errors.TYPE_REQUEST_PREP,
			SourceErr:     err,
			Method:        httpMethod,
			Url:           endpoint,
			CorrelationId: cid,
		}
	}

	if reqData != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerCorrelationId, cid)

	c.limiter.Limit(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Request(req.URL.Host, httpMethod, 0)
		c.logger.Debugf("%s %s failed: %v, cid=%s", httpMethod, endpoint, err, cid)
		return nil, &errors.ApiError{
			Stage:         errors.STAGE_REQUEST,
			Type:          errors.TYPE_IO,
			SourceErr:     err,
			Method:        httpMethod,
			Url:           endpoint,
			CorrelationId: cid,
		}
	}

	c.metrics.Request(req.URL.Host, httpMethod, res.StatusCode)
	c.logger.Debugf("%s %s -> %d, cid=%s", httpMethod, endpoint, res.StatusCode, cid)

	if resCid := res.Header.Get(errors.HEADER_CORRELATION_ID); resCid != "" {
		cid = resCid
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var body []byte
		if res.Body != nil {
			body, _ = io.ReadAll(res.Body)
			defer func() { _ = res.Body.Close() }()
		}
		return body, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_HTTP_STATUS,
			Body:           body,
			HttpStatusCode: res.StatusCode,
			Method:         httpMethod,
			Url:            endpoint,
			Headers:        res.Header,
			CorrelationId:  cid,
		}
	}

	if res.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(res.Body)
	defer func() { _ = res.Body.Close() }()
	if err != nil {
		return body, &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_IO,
			Body:           body,
			HttpStatusCode: res.StatusCode,
			SourceErr:      err,
			Method:         httpMethod,
			Url:            endpoint,
			Headers:        res.Header,
			CorrelationId:  cid,
		}
	}

	return body, nil
}

func (c *apiClient) url(path string, query url.Values) string {
	endpoint := c.baseUrl + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// listIndex performs a clamped page/per_page GET against a management list
// endpoint and decodes the normalized list into out.
func (c *apiClient) listIndex(
	fnName string,
	path string,
	page int,
	perPage int,
	params url.Values,
	out any,
) error {
	p := pagination.Clamp(page, perPage, maxListPerPage)
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("page", fmt.Sprint(p.Page))
	query.Set("per_page", fmt.Sprint(p.PerPage))

	var raw any
	err := c.do(fnName, func() *errors.ApiError {
		return c.getJson(path, query, &raw)
	})
	if err != nil {
		return err
	}
	if err := parsers.DecodeList(parsers.NormalizeList(raw).Data, out); err != nil {
		return &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_JSON_PARSE,
			SourceErr:      err,
			HttpStatusCode: http.StatusOK,
			Url:            c.url(path, query),
			Method:         http.MethodGet,
		}
	}
	return nil
}

// decode converts a normalized JSON value into a typed result.
func decode(in any, out any) error {
	if err := parsers.Decode(in, out); err != nil {
		return &errors.ApiError{
			Stage:          errors.STAGE_AFTER_REQUEST,
			Type:           errors.TYPE_JSON_PARSE,
			SourceErr:      err,
			HttpStatusCode: http.StatusOK,
		}
	}
	return nil
}

func pathWithId(path string, placeholder string, id string) string {
	return strings.Replace(path, placeholder, url.PathEscape(id), 1)
}

// toNilErr converts a *errors.ApiError type to be a true nil interface.
// Internally, a Go interface has a Type and Value.
// An interface value is nil only if the V and T are both unset.
// See: https://go.dev/doc/faq#nil_error
func toNilErr[T any](r T, e *errors.ApiError) (T, error) {
	if e != nil {
		return r, e
	}
	return r, nil
}

func nilErr(e *errors.ApiError) error {
	_, err := toNilErr(struct{}{}, e)
	return err
}
