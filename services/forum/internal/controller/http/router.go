package http

import (
	"net/http"

	"nomadnest/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Route binds one handler to the access policy it requires. Policies are
// declared here and nowhere else; handlers never check authentication.
type Route struct {
	Method  string
	Path    string
	Policy  middleware.Policy
	Handler gin.HandlerFunc
}

type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Posts    *PostHandler
	Comments *CommentHandler
	Board    *BoardHandler
	Payments *PaymentHandler
	Media    *MediaHandler
}

func (h *Handlers) Routes() []Route {
	return []Route{
		{http.MethodPost, "/jwt", middleware.Public, h.Auth.IssueToken},
		{http.MethodPost, "/logout", middleware.Public, h.Auth.Logout},
		{http.MethodGet, "/logout", middleware.Public, h.Auth.Logout},

		{http.MethodPost, "/users", middleware.Public, h.Users.Register},
		{http.MethodGet, "/users", middleware.RequireAdmin, h.Users.ListUsers},
		{http.MethodGet, "/users-count", middleware.RequireAdmin, h.Users.CountUsers},
		{http.MethodPatch, "/users/admin/:id", middleware.RequireAdmin, h.Users.Promote},
		{http.MethodGet, "/users/admin/:email", middleware.RequireAuth, h.Users.CheckAdmin},
		{http.MethodGet, "/user/:email", middleware.RequireAuth, h.Users.GetUser},
		{http.MethodPatch, "/users/warning/:email", middleware.RequireAdmin, h.Users.IssueWarning},
		{http.MethodDelete, "/users/warning/:email", middleware.RequireAuth, h.Users.ClearWarning},
		{http.MethodPatch, "/users/gold", middleware.RequireAuth, h.Users.UpgradeToGold},

		{http.MethodPost, "/posts", middleware.RequireAuth, h.Posts.CreatePost},
		{http.MethodGet, "/posts/:email", middleware.RequireAuth, h.Posts.ListByAuthor},
		{http.MethodDelete, "/posts/:id", middleware.RequireAuth, h.Posts.DeletePost},
		{http.MethodGet, "/post/:id", middleware.Public, h.Posts.GetPost},
		{http.MethodGet, "/all-posts", middleware.Public, h.Posts.ListPosts},
		{http.MethodGet, "/posts-count", middleware.Public, h.Posts.CountPosts},
		{http.MethodGet, "/my-posts-count", middleware.RequireAuth, h.Posts.CountMyPosts},
		{http.MethodPut, "/upvote/:id", middleware.RequireAuth, h.Posts.Upvote},
		{http.MethodPut, "/downvote/:id", middleware.RequireAuth, h.Posts.Downvote},

		{http.MethodPost, "/comments", middleware.RequireAuth, h.Comments.CreateComment},
		{http.MethodGet, "/comments/:id", middleware.Public, h.Comments.ListForPost},
		{http.MethodGet, "/postComments/:id", middleware.Public, h.Comments.CountForPost},
		{http.MethodPatch, "/comments/:id", middleware.RequireAuth, h.Comments.Report},
		{http.MethodGet, "/comments", middleware.RequireAdmin, h.Comments.ListReported},
		{http.MethodGet, "/comments-count", middleware.RequireAdmin, h.Comments.CountReported},
		{http.MethodDelete, "/comments/:id", middleware.RequireAdmin, h.Comments.DeleteComment},

		{http.MethodGet, "/tags", middleware.Public, h.Board.ListTags},
		{http.MethodPost, "/tags", middleware.RequireAdmin, h.Board.AddTag},
		{http.MethodGet, "/announcements", middleware.Public, h.Board.ListAnnouncements},
		{http.MethodGet, "/announcements-count", middleware.Public, h.Board.CountAnnouncements},
		{http.MethodPost, "/announcements", middleware.RequireAdmin, h.Board.CreateAnnouncement},

		{http.MethodPost, "/create-payment-intent", middleware.RequireAuth, h.Payments.CreateIntent},
		{http.MethodPost, "/payments", middleware.RequireAuth, h.Payments.RecordPayment},
		{http.MethodGet, "/payments/:email", middleware.RequireAuth, h.Payments.ListPayments},

		{http.MethodPost, "/uploads", middleware.RequireAuth, h.Media.UploadImage},
	}
}

// Register mounts every route behind the chain its policy names.
func Register(r gin.IRoutes, gate *middleware.Gate, routes []Route) {
	for _, route := range routes {
		chain := append(gate.For(route.Policy), route.Handler)
		r.Handle(route.Method, route.Path, chain...)
	}
}
