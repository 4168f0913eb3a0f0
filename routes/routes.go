package routes

import (
	"net/http"

	"tastyaana/auth"
	"tastyaana/middleware"
	"tastyaana/orders"
	"tastyaana/ratelim"
	"tastyaana/subscriptions"
	"tastyaana/tracker"
	"tastyaana/vendors"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/feedbackpic/*filepath", http.Dir("static/feedbackpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

func AddVendorRoutes(router *httprouter.Router) {
	router.GET("/api/vendors", vendors.GetVendors)
	router.GET("/api/vendors/:vendorid", vendors.GetVendor)
	router.POST("/api/vendors", middleware.Authenticate(vendors.CreateVendor))
	router.PUT("/api/vendors/:vendorid", middleware.Authenticate(vendors.EditVendor))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/laundry/orders", ratelim.RateLimit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/laundry/orders", middleware.Authenticate(orders.GetOrders))
	router.GET("/api/laundry/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.PATCH("/api/laundry/orders/:orderid/status", middleware.Authenticate(orders.UpdateOrderStatus))
	router.POST("/api/laundry/orders/:orderid/cancel", ratelim.RateLimit(middleware.Authenticate(orders.CancelOrder)))
	router.POST("/api/laundry/orders/:orderid/feedback", ratelim.RateLimit(middleware.Authenticate(orders.SubmitFeedback)))
	router.POST("/api/laundry/orders/:orderid/feedback/photos", ratelim.RateLimit(middleware.Authenticate(orders.UploadFeedbackPhotos)))
	router.GET("/api/laundry/orders/:orderid/track", middleware.Authenticate(orders.TrackOrder))
	router.GET("/api/laundry/orders/:orderid/invoice", middleware.Authenticate(orders.PrintInvoice))

	router.POST("/api/laundry/calculate-price", ratelim.RateLimit(orders.CalculatePrice))
}

// Tracking routes need the hub, which is owned by main.
func AddOrderTrackingRoutes(router *httprouter.Router, hub *tracker.Hub) {
	router.GET("/api/laundry/orders/:orderid/updates", middleware.Authenticate(orders.OrderUpdates(hub)))
}

func AddSubscriptionRoutes(router *httprouter.Router) {
	router.POST("/api/laundry/subscriptions", ratelim.RateLimit(middleware.Authenticate(subscriptions.CreateSubscription)))
	router.GET("/api/laundry/subscriptions", middleware.Authenticate(subscriptions.GetSubscriptions))
	router.GET("/api/laundry/subscriptions/:subscriptionid/usage", middleware.Authenticate(subscriptions.GetUsage))
	router.POST("/api/laundry/subscriptions/:subscriptionid/pause", ratelim.RateLimit(middleware.Authenticate(subscriptions.PauseSubscription)))
	router.POST("/api/laundry/subscriptions/:subscriptionid/resume", ratelim.RateLimit(middleware.Authenticate(subscriptions.ResumeSubscription)))
	router.POST("/api/laundry/subscriptions/:subscriptionid/cancel", ratelim.RateLimit(middleware.Authenticate(subscriptions.CancelSubscription)))
	router.POST("/api/laundry/subscriptions/:subscriptionid/auto-renewal", middleware.Authenticate(subscriptions.ToggleAutoRenewal))
	router.PUT("/api/laundry/subscriptions/:subscriptionid/preferences", middleware.Authenticate(subscriptions.UpdatePreferences))
}
