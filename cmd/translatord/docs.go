package main

// General API documentation for swaggo. Run `swag init` to generate docs.
//
// @title           translatord API
// @version         1.0
// @description     HTTP API for LLM-backed text translation.
//
// @BasePath  /
//
// @schemes http
