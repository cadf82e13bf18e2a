package db

import "nexta-backend-go/pkg/database"

// Collection names. Every per-account collection sits under users/{uid}.
const (
	usersCollection                = "users"
	freelancerCollection           = "freelancer"
	companiesCollection            = "companies"
	jobsCollection                 = "jobs"
	applicationsCollection         = "applications"
	receivedApplicationsCollection = "receivedApplications"
	cartCollection                 = "cart"
	bookedCollection               = "booked"
	bookedRequestsCollection       = "bookedRequests"
	auditLogsCollection            = "auditLogs"
)

func userPath(uid string) string {
	return database.Join(usersCollection, uid)
}

func userCollection(uid, collection string) string {
	return database.Join(usersCollection, uid, collection)
}

func userDoc(uid, collection, id string) string {
	return database.Join(usersCollection, uid, collection, id)
}
