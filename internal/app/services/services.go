package services

// Services defined in this package:
// - AuthService: registration, login and profile lookup (the auth gate)
// - PostService: lost/found post CRUD with category validation
// - MatchService: the claim/resolve workflow state machine
