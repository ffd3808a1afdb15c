//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kyren/internal/handler/api"
	"kyren/internal/pkg/clock"
	"kyren/internal/pkg/errs"
	"kyren/internal/usecase/commands"
	"kyren/internal/usecase/queries"
	commandsmock "kyren/tests/mock/commands"
	queriesmock "kyren/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GroupHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockGroupCommands
	mockQueries  *queriesmock.MockGroupQueries
	handler      *api.GroupHandler
	now          time.Time
}

func (s *GroupHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockGroupCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockGroupQueries(s.mockCtrl)
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.handler = api.NewGroupHandler(s.mockCommands, s.mockQueries, clock.NewMockClock(s.now))

	s.router.POST("/groups/join", s.handler.JoinGroup)
	s.router.POST("/groups/sweep", s.handler.Sweep)
	s.router.GET("/groups/:id", s.handler.GetGroup)
}

func (s *GroupHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *GroupHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *GroupHandlerTestSuite) TestJoinGroup_Pending() {
	productID, buyerID := uuid.New(), uuid.New()
	s.mockCommands.EXPECT().
		JoinGroup(gomock.Any(), productID, buyerID).
		Return(&commands.JoinResult{
			OrderID:      uuid.New(),
			GroupID:      uuid.New(),
			Status:       commands.GroupStatusPending,
			CurrentCount: 1,
			TargetCount:  3,
		}, nil)

	w := s.postJSON("/groups/join", gin.H{"product_id": productID, "buyer_id": buyerID})

	s.Equal(http.StatusCreated, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("pending", resp["status"])
	s.Equal(float64(1), resp["currentCount"])
	s.NotContains(resp, "discountPercent")
}

func (s *GroupHandlerTestSuite) TestJoinGroup_InvalidBody() {
	w := s.postJSON("/groups/join", gin.H{"product_id": "not-a-uuid"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *GroupHandlerTestSuite) TestJoinGroup_ProductNotFound() {
	productID, buyerID := uuid.New(), uuid.New()
	s.mockCommands.EXPECT().
		JoinGroup(gomock.Any(), productID, buyerID).
		Return(nil, errs.ErrProductNotFound)

	w := s.postJSON("/groups/join", gin.H{"product_id": productID, "buyer_id": buyerID})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *GroupHandlerTestSuite) TestJoinGroup_Conflict() {
	productID, buyerID := uuid.New(), uuid.New()
	s.mockCommands.EXPECT().
		JoinGroup(gomock.Any(), productID, buyerID).
		Return(nil, errs.ErrConcurrencyConflict)

	w := s.postJSON("/groups/join", gin.H{"product_id": productID, "buyer_id": buyerID})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *GroupHandlerTestSuite) TestJoinGroup_ConflictFromMarkedError() {
	productID, buyerID := uuid.New(), uuid.New()
	cause := errs.New("duplicate key value violates unique constraint")
	s.mockCommands.EXPECT().
		JoinGroup(gomock.Any(), productID, buyerID).
		Return(nil, errs.Mark(cause, errs.ErrConcurrencyConflict))

	w := s.postJSON("/groups/join", gin.H{"product_id": productID, "buyer_id": buyerID})

	s.Equal(http.StatusConflict, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	errObj, ok := resp["error"].(map[string]any)
	s.Require().True(ok)
	s.Equal("Group is being updated, please retry", errObj["message"])
}

func (s *GroupHandlerTestSuite) TestGetGroup_Success() {
	groupID := uuid.New()
	s.mockQueries.EXPECT().
		GetByID(gomock.Any(), groupID).
		Return(&queries.GroupView{
			ID:           groupID,
			ProductID:    uuid.New(),
			ProductName:  "Coffee Beans",
			CurrentCount: 2,
			TargetCount:  5,
			IsActive:     true,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/groups/%s", groupID), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("Coffee Beans", resp["productName"])
	s.Equal(true, resp["isActive"])
}

func (s *GroupHandlerTestSuite) TestSweep_Success() {
	s.mockCommands.EXPECT().
		SweepExpired(gomock.Any(), s.now).
		Return(&commands.SweepResult{ExpiredGroups: 2, CancelledOrders: 5}, nil)

	w := s.postJSON("/groups/sweep", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(float64(2), resp["expiredGroups"])
	s.Equal(float64(5), resp["cancelledOrders"])
}

func (s *GroupHandlerTestSuite) TestSweep_AlreadyRunning() {
	s.mockCommands.EXPECT().
		SweepExpired(gomock.Any(), s.now).
		Return(nil, errs.ErrSweepInProgress)

	w := s.postJSON("/groups/sweep", nil)
	s.Equal(http.StatusConflict, w.Code)
}

func TestGroupHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GroupHandlerTestSuite))
}
