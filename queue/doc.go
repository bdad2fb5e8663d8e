/*
Package queue provides a bounded pool of workers that run independent tasks
concurrently, such as growing the trees of a forest, and report the first
error any of them returns.
*/
package queue
