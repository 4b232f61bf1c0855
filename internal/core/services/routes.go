package services

import "net/url"

const HomePath = "/"

func OrderInformationPath(orderID string) string {
	return "/order-information/" + url.PathEscape(orderID)
}

func RecipientInformationPath(orderID string) string {
	return "/recipient-information/" + url.PathEscape(orderID)
}

func PaymentPath(orderID string) string {
	return "/payment/" + url.PathEscape(orderID)
}

func PaymentSuccessPath(orderID string) string {
	return "/payment-success/" + url.PathEscape(orderID)
}

// EventTicketsPath is the ticket selection page of an event, or the home page
// when the event is unknown.
func EventTicketsPath(eventID string) string {
	if eventID == "" {
		return HomePath
	}
	return "/events/" + url.PathEscape(eventID) + "/tickets"
}
