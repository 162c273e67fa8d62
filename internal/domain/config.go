package domain

// DefaultKeyPrefix namespaces every key written to Redis/Valkey.
const DefaultKeyPrefix = "marksearch:"

// FolderSeparator joins folder titles into a human-readable ancestry path.
const FolderSeparator = " > "
