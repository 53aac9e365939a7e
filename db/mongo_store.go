package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskassign/models"
	"taskassign/store"
)

// MongoStore implements store.Store on top of the shared mongo client.
type MongoStore struct {
	cli *mongo.Client
	db  *mongo.Database
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{cli: client, db: client.Database(databaseName())}
}

func (s *MongoStore) Tasks() store.TaskStore { return &mongoTasks{col: s.db.Collection("tasks")} }
func (s *MongoStore) Users() store.UserStore { return &mongoUsers{col: s.db.Collection("users")} }

// InTransaction runs fn inside a mongo session transaction. The session is
// carried by the context handed to fn, so every store call made through it
// joins the transaction.
func (s *MongoStore) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.cli.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

type mongoTasks struct {
	col *mongo.Collection
}

func (t *mongoTasks) All(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := t.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var tasks []models.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t *mongoTasks) FindByID(ctx context.Context, taskID string) (*models.Task, error) {
	var task models.Task
	err := t.col.FindOne(ctx, bson.M{"taskId": taskID}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *mongoTasks) Insert(ctx context.Context, task models.Task) error {
	_, err := t.col.InsertOne(ctx, task)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicateTaskID
	}
	return err
}

func (t *mongoTasks) SetStatusPriority(ctx context.Context, taskID, status, priority string) (*models.Task, error) {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"priority":  priority,
		"updatedAt": time.Now(),
	}}
	res, err := t.col.UpdateOne(ctx, bson.M{"taskId": taskID}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrTaskNotFound
	}
	return t.FindByID(ctx, taskID)
}

func (t *mongoTasks) Delete(ctx context.Context, taskID string) error {
	res, err := t.col.DeleteOne(ctx, bson.M{"taskId": taskID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

func (t *mongoTasks) DeleteByAssignee(ctx context.Context, email string) (int64, error) {
	res, err := t.col.DeleteMany(ctx, bson.M{"assignedTo": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type mongoUsers struct {
	col *mongo.Collection
}

func (u *mongoUsers) Employees(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := u.col.Find(ctx, bson.M{"role": models.RoleEmployee})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *mongoUsers) Apply(ctx context.Context, email string, update models.UserUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Email != "" {
		set["email"] = update.Email
	}
	if update.Password != "" {
		set["password"] = update.Password
	}
	if update.Role != "" {
		set["role"] = update.Role
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := u.col.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *mongoUsers) Delete(ctx context.Context, email string) error {
	res, err := u.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

func (u *mongoUsers) PushSnapshot(ctx context.Context, email string, snap models.TaskSnapshot) error {
	res, err := u.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$push": bson.M{"tasks": snap}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

func (u *mongoUsers) UpdateSnapshot(ctx context.Context, email, taskID, status, priority string) (bool, error) {
	res, err := u.col.UpdateOne(ctx,
		bson.M{"email": email, "tasks.taskId": taskID},
		bson.M{"$set": bson.M{
			"tasks.$.status":   status,
			"tasks.$.priority": priority,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (u *mongoUsers) PullSnapshot(ctx context.Context, email, taskID string) error {
	_, err := u.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$pull": bson.M{"tasks": bson.M{"taskId": taskID}}},
	)
	return err
}
