package db

import "context"

// Banners returns the banners shown on the landing page.
func (ms *MongoStorage) Banners() ([]Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return findDocuments(ctx, ms.banners, Document{})
}

// Testimonials returns every stored testimonial.
func (ms *MongoStorage) Testimonials() ([]Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return findDocuments(ctx, ms.testimonials, Document{})
}

// AddTestimonial stores a new testimonial document.
func (ms *MongoStorage) AddTestimonial(review Document) (*InsertResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return insertDocument(ctx, ms.testimonials, review)
}
