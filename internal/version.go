package internal

// Version is the current zhkit version
const Version = "0.3.1"
