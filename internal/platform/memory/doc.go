// Package memory provides in-memory implementations of the data storage
// interfaces defined in the internal/store package. They back local
// development without a database and keep engine tests fast and
// deterministic. All implementations are safe for concurrent use.
package memory
