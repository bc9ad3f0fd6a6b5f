package gofsmagent

// Version of the gofsmagent module.
const Version = "0.1.0"
