// Package queue_publisher pushes booking and order events onto the
// activity queue. Publish errors are logged and returned; handlers fire
// the publish in a goroutine after commit and ignore the result, so a
// broker outage never fails a request.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "campus-table/internal/queue"
)

// PublishBookingConfirmed publishes a BookingConfirmedEvent onto the activity
// queue. Any error is logged and returned so the caller can choose to ignore
// it. Messages are marked as persistent.
func PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
    payload, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal booking event failed: %v", err)
        return err
    }
    return publish(ctx, q.Envelope{Kind: q.KindBookingConfirmed, Payload: payload})
}

// PublishOrderPlaced publishes an OrderPlacedEvent onto the activity queue.
func PublishOrderPlaced(ctx context.Context, event q.OrderPlacedEvent) error {
    payload, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal order event failed: %v", err)
        return err
    }
    return publish(ctx, q.Envelope{Kind: q.KindOrderPlaced, Payload: payload})
}

func publish(ctx context.Context, env q.Envelope) error {
    conn, err := amqp.Dial(q.BrokerURL())
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        "campus.activity", // name
        true,              // durable
        false,             // autoDelete
        false,             // exclusive
        false,             // noWait
        nil,               // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(env)
    if err != nil {
        log.Printf("rabbitmq: marshal envelope failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",                // default exchange
        "campus.activity", // routing key = queue name
        false,             // mandatory
        false,             // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }

    return nil
}
