// Package trackx is the backend of the TrackX school transport tracking platform:
// its subscription & billing site.
//
//	apps/api    REST API: schools, subscription plans & school subscriptions (invoices issued on subscribe)
//	apps/admin  management commands: database migrations & school provisioning
package trackx
