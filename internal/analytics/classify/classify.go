// Package classify decides whether a revenue record is paid or complimentary.
// The rules are pure functions over the record itself so they stay identical
// between the trend, summary and distribution paths.
package classify

import (
	corporatedomain "github.com/fitlane/fitlane/internal/corporate/domain"
	subscriptiondomain "github.com/fitlane/fitlane/internal/subscription/domain"
)

// PaidSubscription reports whether an individual subscription contributes
// revenue. Only active subscriptions with a payment reference count; trials,
// past-due and administratively granted plans are complimentary.
func PaidSubscription(s subscriptiondomain.Subscription) bool {
	return s.Status == subscriptiondomain.SubscriptionStatusActive && s.PaymentRef != ""
}

// PaidCorporate reports whether a corporate account contributes revenue.
// Corporate billing additionally requires a customer reference; an account
// missing either is still served but bills nothing.
func PaidCorporate(c corporatedomain.CorporateSubscription) bool {
	return c.Status == corporatedomain.CorporateStatusActive &&
		c.PaymentRef != "" &&
		c.CustomerRef != ""
}
