package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/subscription"
)

type SubscriptionHandler struct {
	subscriptions subscription.Service
}

func NewSubscriptionHandler(subscriptions subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	subscribed, err := h.subscriptions.ToggleSubscription(r.Context(), CallerID(r.Context()), mux.Vars(r)["channelId"])
	if err != nil {
		writeError(w, err)
		return
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	writeJSON(w, http.StatusOK, message, map[string]bool{"subscribed": subscribed})
}

func (h *SubscriptionHandler) ChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	views, err := h.subscriptions.ChannelSubscribers(r.Context(), mux.Vars(r)["channelId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "subscribers fetched", views)
}

func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	views, err := h.subscriptions.SubscribedChannels(r.Context(), mux.Vars(r)["subscriberId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "subscribed channels fetched", views)
}
