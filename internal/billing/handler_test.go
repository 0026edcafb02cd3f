package billing

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/member"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(svc *MockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("gym_id", gymID)
		c.Next()
	})
	router.POST("/signup", h.Signup)
	router.POST("/renew", h.Renew)
	router.POST("/pay-due", h.PayDue)
	router.POST("/transfer", h.Transfer)
	router.POST("/complimentary-days", h.AddComplimentaryDays)
	router.PUT("/members/:number", h.UpdateMember)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Signup(t *testing.T) {
	svc := new(MockService)
	svc.On("Signup", mock.Anything, gymID, mock.MatchedBy(func(r SignupRequest) bool {
		return r.Number == "9800000001" && r.MembershipAmount != nil && r.MembershipAmount.String() == "50"
	})).Return(&Result{Member: &member.Member{ID: "KN1", Number: "9800000001"}}, nil)

	w := do(setupRouter(svc), http.MethodPost, "/signup", `{
		"name": "Asha", "number": "9800000001", "gender": "female", "age": 29,
		"membership_type": "Monthly", "membership_amount": 50, "membership_payment_mode": "Cash"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"KN1"`)
	svc.AssertExpectations(t)
}

func TestHandler_SignupBadJSON(t *testing.T) {
	svc := new(MockService)

	w := do(setupRouter(svc), http.MethodPost, "/signup", `{"membership_amount": "fifty"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_SignupConflict(t *testing.T) {
	svc := new(MockService)
	svc.On("Signup", mock.Anything, gymID, mock.Anything).Return(nil, member.ErrMemberExists)

	w := do(setupRouter(svc), http.MethodPost, "/signup", `{"number": "9800000001"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"member already exists"}`, w.Body.String())
}

func TestHandler_PayDueInvariant(t *testing.T) {
	svc := new(MockService)
	svc.On("PayDue", mock.Anything, gymID, mock.Anything).Return(nil, member.ErrOverpayment)

	w := do(setupRouter(svc), http.MethodPost, "/pay-due", `{"number": "9800000001", "amount_paid": "40"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds the outstanding due")
}

func TestHandler_RenewNotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("Renew", mock.Anything, gymID, mock.Anything).Return(nil, member.ErrMemberNotFound)

	w := do(setupRouter(svc), http.MethodPost, "/renew", `{"number": "9800000009"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_UpdateMember(t *testing.T) {
	svc := new(MockService)
	svc.On("UpdateMember", mock.Anything, gymID, "9800000001", mock.MatchedBy(func(r UpdateMemberRequest) bool {
		return r.Name != nil && *r.Name == "Asha K" && r.MembershipType == nil
	})).Return(&member.Member{Name: "Asha K"}, nil)

	w := do(setupRouter(svc), http.MethodPut, "/members/9800000001", `{"name": "Asha K"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Transfer(t *testing.T) {
	svc := new(MockService)
	svc.On("Transfer", mock.Anything, gymID, TransferRequest{SourceNumber: "1", TargetNumber: "2"}).
		Return(&TransferResult{Source: &member.Member{}, Target: &member.Member{}, DaysTransferred: 10}, nil)

	w := do(setupRouter(svc), http.MethodPost, "/transfer", `{"source_number": "1", "target_number": "2"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"days_transferred":10`)
}

func TestHandler_ComplimentaryDays(t *testing.T) {
	svc := new(MockService)
	svc.On("AddComplimentaryDays", mock.Anything, gymID, ComplimentaryDaysRequest{Number: "1", Days: 7}).
		Return(&member.Member{Number: "1", Status: member.StatusActive}, nil)

	w := do(setupRouter(svc), http.MethodPost, "/complimentary-days", `{"number": "1", "days": 7}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Active"`)
}

func TestHandler_RequiresGymScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(MockService)
	h := NewHandler(svc)
	router := gin.New()
	router.POST("/signup", h.Signup)
	router.POST("/transfer", h.Transfer)

	for _, path := range []string{"/signup", "/transfer"} {
		w := do(router, http.MethodPost, path, `{}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything)
}
