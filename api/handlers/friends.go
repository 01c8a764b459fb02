package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"encuentros/api/middleware"
	"encuentros/models"
	"encuentros/services"

	"github.com/gin-gonic/gin"
)

// FriendHandler exposes the friendship services over HTTP.
type FriendHandler struct {
	requests      *services.FriendRequestService
	notifications *services.NotificationService
	friends       *services.FriendService
	search        *services.SearchService
}

func NewFriendHandler(
	requests *services.FriendRequestService,
	notifications *services.NotificationService,
	friends *services.FriendService,
	search *services.SearchService,
) *FriendHandler {
	return &FriendHandler{
		requests:      requests,
		notifications: notifications,
		friends:       friends,
		search:        search,
	}
}

var errIdentityMismatch = errors.New("user id does not match the authenticated user")

// actingUser picks the user a request acts for: the explicit id, or the authenticated
// one when the id is omitted. Both present and different is a 403.
func actingUser(c *gin.Context, explicit int64) (int64, error) {
	actor, ok := middleware.ActorFrom(c)
	if explicit <= 0 {
		if ok {
			return actor, nil
		}
		return 0, services.ErrMissingUser
	}
	if ok && actor != explicit {
		return 0, errIdentityMismatch
	}
	return explicit, nil
}

func queryID(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrInvalidArgument
	}
	return id, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, services.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, services.ErrConflict):
		return "conflict"
	case errors.Is(err, services.ErrForbidden), errors.Is(err, errIdentityMismatch):
		return "forbidden"
	case errors.Is(err, services.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument), errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrForbidden), errors.Is(err, errIdentityMismatch):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, context.Canceled):
		c.JSON(499, gin.H{"success": false, "error": "request canceled"})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}

type friendRequestBody struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// CreateFriendRequest - POST users/friend-request
func (h *FriendHandler) CreateFriendRequest(c *gin.Context) {
	start := time.Now()
	var body friendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "from and to are required"})
		return
	}

	res, err := h.createRequest(c, body)
	middleware.RecordFriendOperation("create", outcomeOf(err), time.Since(start))
	if err != nil {
		writeError(c, err)
		return
	}

	message := "friend request sent"
	if res.Outcome == services.OutcomeAutoAccepted {
		message = "friend request accepted automatically, you are now friends"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"outcome":    res.Outcome,
		"relationId": res.RelationID,
	})
}

func (h *FriendHandler) createRequest(c *gin.Context, body friendRequestBody) (services.CreateResult, error) {
	if body.To <= 0 {
		return services.CreateResult{}, services.ErrMissingUser
	}
	from, err := actingUser(c, body.From)
	if err != nil {
		return services.CreateResult{}, err
	}
	return h.requests.CreateRequest(c.Request.Context(), from, body.To)
}

type answerBody struct {
	RelationID int64 `json:"relationId"`
	// field name used by older clients
	LegacyRelationID int64 `json:"id_relacion_amistad"`
	UserID           int64 `json:"userId"`
}

func (b answerBody) relationID() int64 {
	if b.RelationID > 0 {
		return b.RelationID
	}
	return b.LegacyRelationID
}

func (h *FriendHandler) bindAnswer(c *gin.Context) (relationID, userID int64, err error) {
	var body answerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return 0, 0, services.ErrMissingRelation
	}
	if body.relationID() <= 0 {
		return 0, 0, services.ErrMissingRelation
	}
	userID, err = actingUser(c, body.UserID)
	if err != nil {
		return 0, 0, err
	}
	return body.relationID(), userID, nil
}

// AcceptRequest - POST users/accept-request
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	start := time.Now()
	relationID, userID, err := h.bindAnswer(c)
	if err == nil {
		_, err = h.requests.AcceptRequest(c.Request.Context(), relationID, userID)
	}
	middleware.RecordFriendOperation("accept", outcomeOf(err), time.Since(start))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "friend request accepted"})
}

// RejectRequest - POST users/reject-request
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	start := time.Now()
	relationID, userID, err := h.bindAnswer(c)
	if err == nil {
		err = h.requests.RejectRequest(c.Request.Context(), relationID, userID)
	}
	middleware.RecordFriendOperation("reject", outcomeOf(err), time.Since(start))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "friend request rejected"})
}

// GetNotifications - GET users/notifications?userId=
func (h *FriendHandler) GetNotifications(c *gin.Context) {
	explicit, err := queryID(c, "userId")
	if err != nil {
		writeError(c, err)
		return
	}
	userID, err := actingUser(c, explicit)
	if err != nil {
		writeError(c, err)
		return
	}

	feed, err := h.notifications.Build(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pending": feed.Pending, "accepted": feed.Accepted})
}

// GetFriends - GET users/friends/:userId
func (h *FriendHandler) GetFriends(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "userId must be a valid number"})
		return
	}

	friends, err := h.friends.GetFriends(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if friends == nil {
		friends = []models.UserProfile{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "friends": friends})
}

// GetPendingCount - GET users/friend-requests/count?userId=
func (h *FriendHandler) GetPendingCount(c *gin.Context) {
	explicit, err := queryID(c, "userId")
	if err != nil {
		writeError(c, err)
		return
	}
	userID, err := actingUser(c, explicit)
	if err != nil {
		writeError(c, err)
		return
	}

	count, err := h.friends.PendingCount(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// SearchUsers - GET users/search_user?q=&currentUser=
func (h *FriendHandler) SearchUsers(c *gin.Context) {
	currentUser, err := queryID(c, "currentUser")
	if err != nil {
		writeError(c, err)
		return
	}

	results, err := h.search.Search(c.Request.Context(), c.Query("q"), currentUser)
	if err != nil {
		log.Printf("search_user failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error searching users"})
		return
	}
	if currentUser <= 0 {
		plain := make([]models.UserProfile, len(results))
		for i, r := range results {
			plain[i] = r.UserProfile
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "results": plain})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}
