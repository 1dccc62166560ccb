// Package task runs named background tasks.
//
// A Client publishes task messages to a Broker; a Worker consumes them,
// runs the registered Handler and stores the outcome in a ResultBackend
// where the caller's AsyncResult picks it up. The Scheduler enqueues
// tasks on cron schedules evaluated in UTC.
//
// Brokers and backends are chosen by URL:
//
//	tasks:
//	  broker_url: "redis://localhost:6379/0"
//	  result_backend: "redis://localhost:6379/0"
//
// "memory://" keeps everything in process, and always_eager runs tasks
// inline inside Delay:
//
//	client := task.NewClient(task.Config{AlwaysEager: true}, reg, broker, backend, nil)
//	res, _ := client.Delay(ctx, task.TaskExample)
//	out, _ := res.Get(ctx, 10*time.Second) // "task completed"
package task
