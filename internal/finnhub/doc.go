// Package finnhub provides the Finnhub REST client used to fetch quarterly
// earnings-calendar records.
//
// Endpoint: GET https://finnhub.io/api/v1/calendar/earnings
// Auth: X-Finnhub-Token header
package finnhub
