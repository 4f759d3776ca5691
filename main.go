package main

import "github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/app"

// @title           TaskFlow API
// @version         1.0
// @description     Multi-user task board with workflow stages, risk scoring and AI assistance.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
